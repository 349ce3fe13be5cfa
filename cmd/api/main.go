package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"gorent/internal/database"
	"gorent/internal/middleware"
	"gorent/internal/modules/auth"
	"gorent/internal/modules/clients"
	"gorent/internal/modules/contracts"
	"gorent/internal/modules/fleet"
	"gorent/internal/modules/invoices"
	"gorent/internal/modules/maintenance"
	"gorent/internal/modules/notifications"
	"gorent/internal/modules/reports"
	"gorent/internal/modules/reservations"
	jwtsvc "gorent/internal/pkg/jwt"
	"gorent/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	contractRepo := repository.NewContractRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(secret, "gorent", 24*time.Hour)

	hub := notifications.NewHub()
	defer hub.Close()
	notificationService := notifications.NewService(notificationRepo, userRepo, hub)
	notificationHandler := notifications.NewHandler(notificationService, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	reservationService := reservations.NewService(reservationRepo, vehicleRepo, clientRepo, notificationService)
	reservationHandler := reservations.NewHandler(reservationService)

	contractService := contracts.NewService(contractRepo, vehicleRepo, clientRepo, reservationService, notificationService)
	contractHandler := contracts.NewHandler(contractService)

	invoiceService := invoices.NewService(invoiceRepo, clientRepo, contractRepo, notificationService)
	invoiceHandler := invoices.NewHandler(invoiceService)

	fleetService := fleet.NewService(vehicleRepo, reservationRepo)
	fleetHandler := fleet.NewHandler(fleetService)

	clientService := clients.NewService(clientRepo)
	clientHandler := clients.NewHandler(clientService)

	maintenanceService := maintenance.NewService(maintenanceRepo, vehicleRepo)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)

	reportService := reports.NewService(contractRepo, invoiceRepo, maintenanceRepo, vehicleRepo)
	reportHandler := reports.NewHandler(reportService)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := invoiceService.SweepOverdue(ctx)
		if err != nil {
			log.Printf("overdue sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("overdue sweep: %d invoice(s) flagged", n)
		}
	}); err != nil {
		log.Fatal("cron setup failed: ", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	notificationHandler.RegisterWS(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterRoutes(protected)
			fleetHandler.RegisterRoutes(protected)
			clientHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			contractHandler.RegisterRoutes(protected)
			invoiceHandler.RegisterRoutes(protected)
			maintenanceHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
