package identity

import (
	"errors"
	"fmt"

	"github.com/openclinic/hms/internal/storage"
)

// CSVUserStore keeps all users in memory, backed by users.csv.
type CSVUserStore struct {
	tbl *storage.Table[User]
}

func NewCSVUserStore() *CSVUserStore {
	return &CSVUserStore{tbl: storage.NewTable[User]()}
}

func (s *CSVUserStore) Add(u User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	return s.tbl.Add(u)
}

func (s *CSVUserStore) Get(id string) (*User, error) {
	u, ok := s.tbl.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return &u, nil
}

func (s *CSVUserStore) Update(u User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if err := s.tbl.Update(u); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, u.ID)
		}
		return err
	}
	return nil
}

func (s *CSVUserStore) List() []User {
	return s.tbl.List()
}

func (s *CSVUserStore) ListByRole(role Role) []User {
	return s.tbl.Filter(func(u User) bool { return u.Role == role })
}

// HasPatient and HasDoctor satisfy the scheduling engine's directory checks.

func (s *CSVUserStore) HasPatient(id string) bool { return s.hasRole(id, RolePatient) }

func (s *CSVUserStore) HasDoctor(id string) bool { return s.hasRole(id, RoleDoctor) }

func (s *CSVUserStore) hasRole(id string, role Role) bool {
	u, ok := s.tbl.Get(id)
	return ok && u.Role == role
}

func (s *CSVUserStore) Len() int { return s.tbl.Len() }

func (s *CSVUserStore) Load(path string) error {
	return storage.LoadCSV(path, userCodec{}, s.tbl)
}

func (s *CSVUserStore) Save(path string) error {
	return storage.SaveCSV(path, userCodec{}, s.tbl)
}

type userCodec struct{}

func (userCodec) Header() []string {
	return []string{"userID", "name", "role", "specialty", "dateOfBirth", "contact"}
}

func (userCodec) Encode(u User) []string {
	return []string{u.ID, u.Name, string(u.Role), u.Specialty, u.DateOfBirth, u.Contact}
}

func (userCodec) Decode(row []string) (User, error) {
	u := User{
		ID:          row[0],
		Name:        row[1],
		Role:        Role(row[2]),
		Specialty:   row[3],
		DateOfBirth: row[4],
		Contact:     row[5],
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}
