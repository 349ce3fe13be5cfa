package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"gorent/internal/database"
	"gorent/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "gorent.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM invoice_items")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM maintenance_records")
	db.Exec("DELETE FROM contracts")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM users")

	log.Println("Creating staff...")
	staff := []struct {
		email    string
		password string
		name     string
		role     domain.UserRole
	}{
		{"admin@gorent.test", "admin123", "Administrator", domain.RoleAdmin},
		{"manager@gorent.test", "manager123", "Fleet Manager", domain.RoleManager},
		{"agent@gorent.test", "agent123", "Rental Agent", domain.RoleAgent},
	}
	for _, s := range staff {
		hash, _ := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		db.Create(&domain.User{
			Email:        s.email,
			PasswordHash: string(hash),
			Name:         s.name,
			Role:         s.role,
			Agency:       "Casablanca Centre",
			Active:       true,
		})
		log.Printf("  %s / %s (%s)", s.email, s.password, s.role)
	}

	log.Println("Creating fleet...")
	vehicles := []domain.Vehicle{
		{Brand: "Dacia", Model: "Logan", Category: "economy", Year: 2022, LicensePlate: "12345-A-6",
			Transmission: domain.TransmissionManual, Fuel: domain.FuelDiesel, Seats: 5,
			DailyRate: decimal.NewFromInt(250), Mileage: 41200, Status: domain.VehicleAvailable},
		{Brand: "Renault", Model: "Clio", Category: "economy", Year: 2023, LicensePlate: "67890-B-6",
			Transmission: domain.TransmissionManual, Fuel: domain.FuelPetrol, Seats: 5,
			DailyRate: decimal.NewFromInt(280), Mileage: 18400, Status: domain.VehicleAvailable},
		{Brand: "Hyundai", Model: "Tucson", Category: "suv", Year: 2023, LicensePlate: "24680-C-6",
			Transmission: domain.TransmissionAutomatic, Fuel: domain.FuelHybrid, Seats: 5,
			DailyRate: decimal.NewFromInt(650), Mileage: 9900, Status: domain.VehicleAvailable},
		{Brand: "Mercedes", Model: "C200", Category: "premium", Year: 2022, LicensePlate: "13579-D-6",
			Transmission: domain.TransmissionAutomatic, Fuel: domain.FuelPetrol, Seats: 5,
			DailyRate: decimal.NewFromInt(1100), Mileage: 33000, Status: domain.VehicleMaintenance},
	}
	for i := range vehicles {
		db.Create(&vehicles[i])
	}

	log.Println("Creating clients...")
	clientRows := []domain.Client{
		{FullName: "Amina Haddad", Email: "amina@mail.test", Phone: "+212 600 111 222",
			Address: "12 rue des Oliviers", City: "Casablanca", LicenseNumber: "MA-118822",
			Status: domain.ClientVIP},
		{FullName: "Youssef Berrada", Email: "youssef@mail.test", Phone: "+212 600 333 444",
			City: "Rabat", LicenseNumber: "MA-556677", Status: domain.ClientNormal},
		{FullName: "Karim El Fassi", Email: "karim@mail.test", Phone: "+212 600 555 666",
			City: "Marrakech", LicenseNumber: "MA-990011", Status: domain.ClientRisky,
			Notes: "late return in March"},
		{FullName: "Omar Tazi", Email: "omar@mail.test", City: "Fes",
			LicenseNumber: "MA-220033", Status: domain.ClientBlocked, Notes: "unpaid invoice"},
	}
	for i := range clientRows {
		db.Create(&clientRows[i])
	}

	log.Println("Creating reservations...")
	now := time.Now().Truncate(24 * time.Hour)
	res := domain.Reservation{
		VehicleID:      vehicles[0].ID,
		ClientID:       clientRows[0].ID,
		StartDate:      now.AddDate(0, 0, 3),
		EndDate:        now.AddDate(0, 0, 5),
		PickupLocation: "Casablanca Centre",
		ReturnLocation: "Casablanca Centre",
		TotalPrice:     decimal.NewFromInt(500),
		Status:         domain.ReservationConfirmed,
	}
	db.Create(&res)

	log.Println("Creating a signed contract...")
	contract := domain.Contract{
		Type:        domain.ContractContrat,
		ClientID:    clientRows[1].ID,
		VehicleID:   vehicles[1].ID,
		StartDate:   now.AddDate(0, 0, -7),
		EndDate:     now.AddDate(0, 0, -2),
		DailyRate:   decimal.NewFromInt(280),
		TotalDays:   5,
		Discount:    decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(1300),
		Deposit:     decimal.NewFromInt(3000),
		Status:      domain.ContractCompleted,
	}
	db.Create(&contract)

	log.Println("Creating an invoice...")
	invoice := domain.Invoice{
		Ref:        "INV-" + now.Format("2006") + "-0001",
		Date:       now.AddDate(0, 0, -2),
		DueDate:    now.AddDate(0, 0, 28),
		ContractID: &contract.ID,
		ClientID:   clientRows[1].ID,
		ClientName: clientRows[1].FullName,
		TaxRate:    decimal.NewFromFloat(0.20),
		Status:     domain.InvoicePending,
		Items: []domain.InvoiceItem{
			{Position: 1, Description: "Location Renault Clio, 5 jours",
				Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(280)},
			{Position: 2, Description: "Remise fidelite",
				Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-100)},
		},
	}
	invoice.ComputeTotals()
	db.Create(&invoice)

	log.Println("Creating maintenance backlog...")
	record := domain.MaintenanceRecord{
		VehicleID:   vehicles[3].ID,
		Type:        "brakes",
		Description: "front pads and discs",
		Garage:      "Atlas Auto",
		Date:        now.AddDate(0, 0, -1),
		PartsCost:   decimal.NewFromInt(1200),
		LaborCost:   decimal.NewFromInt(400),
		Status:      domain.MaintenanceInProgress,
	}
	record.ComputeTotalCost()
	db.Create(&record)

	log.Println("Seed complete.")
}
