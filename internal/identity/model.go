// Package identity holds the hospital's user records. All roles share one
// User value tagged by Role; role-specific fields are populated only where the
// role calls for them.
package identity

import (
	"errors"
	"fmt"
)

type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RolePharmacist Role = "pharmacist"
	RoleAdmin      Role = "admin"
)

var validRoles = map[Role]bool{
	RolePatient:    true,
	RoleDoctor:     true,
	RolePharmacist: true,
	RoleAdmin:      true,
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnknownRole  = errors.New("unknown role")
)

type User struct {
	ID   string
	Name string
	Role Role

	// Doctor only.
	Specialty string

	// Patient only.
	DateOfBirth string // yyyy-MM-dd
	Contact     string
}

func (u User) Key() string { return u.ID }

func (u User) Validate() error {
	if !validRoles[u.Role] {
		return fmt.Errorf("%w: %q", ErrUnknownRole, u.Role)
	}
	return nil
}
