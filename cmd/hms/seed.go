package main

import (
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	"github.com/openclinic/hms/internal/config"
	"github.com/openclinic/hms/internal/identity"
	"github.com/openclinic/hms/internal/pharmacy"
	"github.com/openclinic/hms/internal/scheduling"
)

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

var medicationNames = []string{
	"Paracetamol 500mg",
	"Ibuprofen 200mg",
	"Amoxicillin 250mg",
	"Omeprazole 20mg",
	"Metformin 500mg",
	"Amlodipine 5mg",
	"Salbutamol Inhaler",
	"Cetirizine 10mg",
	"Atorvastatin 20mg",
	"Lisinopril 10mg",
}

func seedCmd() *cobra.Command {
	var (
		doctors  int
		patients int
		days     int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo CSV tables into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return seed(cfg, doctors, patients, days)
		},
	}

	cmd.Flags().IntVar(&doctors, "doctors", 5, "number of doctors")
	cmd.Flags().IntVar(&patients, "patients", 40, "number of patients")
	cmd.Flags().IntVar(&days, "days", 14, "days of slot availability to generate")
	return cmd
}

func seed(cfg config.Config, doctors, patients, days int) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	gofakeit.Seed(time.Now().UnixNano())
	tbl := newTables(cfg.DataDir)

	for i := 1; i <= doctors; i++ {
		err := tbl.users.Add(identity.User{
			ID:        fmt.Sprintf("D%02d", i),
			Name:      gofakeit.Name(),
			Role:      identity.RoleDoctor,
			Specialty: specialties[gofakeit.Number(0, len(specialties)-1)],
		})
		if err != nil {
			return fmt.Errorf("seed doctor: %w", err)
		}
	}

	for i := 1; i <= patients; i++ {
		err := tbl.users.Add(identity.User{
			ID:   fmt.Sprintf("P%03d", i),
			Name: gofakeit.Name(),
			Role: identity.RolePatient,
			DateOfBirth: fmt.Sprintf("%04d-%02d-%02d",
				gofakeit.Number(1950, 2005), gofakeit.Number(1, 12), gofakeit.Number(1, 28)),
			Contact: gofakeit.Phone(),
		})
		if err != nil {
			return fmt.Errorf("seed patient: %w", err)
		}
	}

	err := tbl.users.Add(identity.User{ID: "PH01", Name: gofakeit.Name(), Role: identity.RolePharmacist})
	if err != nil {
		return fmt.Errorf("seed pharmacist: %w", err)
	}
	err = tbl.users.Add(identity.User{ID: "AD01", Name: gofakeit.Name(), Role: identity.RoleAdmin})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	for i, name := range medicationNames {
		err := tbl.medications.Add(pharmacy.Medication{
			ID:            fmt.Sprintf("M%02d", i+1),
			Name:          name,
			Stock:         gofakeit.Number(20, 200),
			LowStockLevel: 10,
		})
		if err != nil {
			return fmt.Errorf("seed medication: %w", err)
		}
	}

	// One 30-minute grid of morning slots per doctor per day, thinned at
	// random so availability looks organic.
	slotSeq := 0
	for d := 1; d <= doctors; d++ {
		doctorID := fmt.Sprintf("D%02d", d)
		for day := 1; day <= days; day++ {
			date := time.Now().AddDate(0, 0, day).Format(scheduling.DateLayout)
			for hour := 9; hour < 12; hour++ {
				for _, min := range []int{0, 30} {
					if gofakeit.Number(0, 2) == 0 {
						continue
					}
					slotSeq++
					end := hour
					endMin := min + 30
					if endMin == 60 {
						end, endMin = hour+1, 0
					}
					err := tbl.slots.Add(scheduling.Slot{
						ID:       fmt.Sprintf("S%04d", slotSeq),
						DoctorID: doctorID,
						Date:     date,
						Start:    fmt.Sprintf("%02d:%02d", hour, min),
						End:      fmt.Sprintf("%02d:%02d", end, endMin),
						Status:   scheduling.SlotAvailable,
					})
					if err != nil {
						return fmt.Errorf("seed slot: %w", err)
					}
				}
			}
		}
	}

	// Appointments, outcomes and prescriptions start empty; flushing writes
	// header-only files for them so serve can load a fresh directory.
	if err := tbl.flush(); err != nil {
		return err
	}

	fmt.Printf("seeded %s: %d doctors, %d patients, %d medications, %d slots\n",
		cfg.DataDir, doctors, patients, tbl.medications.Len(), tbl.slots.Len())
	return nil
}
