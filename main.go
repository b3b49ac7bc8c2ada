package main

import (
	"net/http"

	"worklog/config"
	"worklog/database"
	"worklog/handlers"
	"worklog/middleware"
	"worklog/models"
	"worklog/notify"
	"worklog/timesheet"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	db := database.GetDB()

	// Wire the workflow: store -> dispatcher -> service -> sessions
	store := timesheet.NewStore(db)
	mailer := &notify.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}
	dispatcher := notify.NewDispatcher(db, mailer, log)
	service := timesheet.NewService(store, dispatcher, log, cfg.PayrollEmail)
	sessions := timesheet.NewSessionManager(service)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	timesheetHandler := handlers.NewTimesheetHandler(sessions)
	employeeHandler := handlers.NewEmployeeHandler(db)
	exportHandler := handlers.NewExportHandler(service)
	auditHandler := handlers.NewAuditHandler(dispatcher)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/api/logout", authHandler.Logout)

		// Monthly hours view-model and operations
		r.Get("/api/timesheet", timesheetHandler.View)
		r.Put("/api/timesheet/year", timesheetHandler.SelectYear)
		r.Put("/api/timesheet/month", timesheetHandler.SelectMonth)
		r.Post("/api/timesheet/navigate", timesheetHandler.Navigate)
		r.Post("/api/timesheet/records", timesheetHandler.SaveRecord)
		r.Delete("/api/timesheet/records/{id}", timesheetHandler.DeleteRecord)
		r.Post("/api/timesheet/submit", timesheetHandler.Submit)

		// Employee directory and export
		r.Get("/api/employees", employeeHandler.List)
		r.Get("/api/export/csv", exportHandler.CSV)

		// Admin only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Post("/api/employees", employeeHandler.Create)
			r.Delete("/api/employees/{id}", employeeHandler.Deactivate)
			r.Get("/api/audit", auditHandler.Recent)
		})
	})

	log.WithField("port", cfg.ServerPort).Info("Server starting")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
