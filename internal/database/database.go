package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"gorent/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every table the service owns.
// The overlap guard on reservations is an index gorm cannot express, so it
// is added with raw SQL per dialect after AutoMigrate.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Vehicle{},
		&domain.Client{},
		&domain.Reservation{},
		&domain.Contract{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&domain.MaintenanceRecord{},
		&domain.Notification{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		// Serializes check-then-act booking creation across processes: two
		// overlapping non-cancelled reservations on one vehicle cannot both
		// commit. Surfaces as a pgconn exclusion violation.
		return db.Exec(`
CREATE EXTENSION IF NOT EXISTS btree_gist;
DO $$ BEGIN
  ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
    EXCLUDE USING gist (
      vehicle_id WITH =,
      tstzrange(start_date, end_date, '[)') WITH &&
    ) WHERE (status <> 'cancelled');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;
`).Error
	}

	return nil
}
