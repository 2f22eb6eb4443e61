package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avasquez/dental-api/internal/config"
	"github.com/avasquez/dental-api/internal/email"
	"github.com/avasquez/dental-api/internal/handler"
	appointmentHandler "github.com/avasquez/dental-api/internal/handler/appointment"
	authHandler "github.com/avasquez/dental-api/internal/handler/auth"
	billingHandler "github.com/avasquez/dental-api/internal/handler/billing"
	dashboardHandler "github.com/avasquez/dental-api/internal/handler/dashboard"
	healthHandler "github.com/avasquez/dental-api/internal/handler/health"
	patientHandler "github.com/avasquez/dental-api/internal/handler/patient"
	treatmentHandler "github.com/avasquez/dental-api/internal/handler/treatment"
	userHandler "github.com/avasquez/dental-api/internal/handler/user"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/pdf"
	"github.com/avasquez/dental-api/internal/repository/sqlite"
	"github.com/avasquez/dental-api/internal/router"
	appointmentService "github.com/avasquez/dental-api/internal/service/appointment"
	authService "github.com/avasquez/dental-api/internal/service/auth"
	billingService "github.com/avasquez/dental-api/internal/service/billing"
	dashboardService "github.com/avasquez/dental-api/internal/service/dashboard"
	patientService "github.com/avasquez/dental-api/internal/service/patient"
	treatmentService "github.com/avasquez/dental-api/internal/service/treatment"
	userService "github.com/avasquez/dental-api/internal/service/user"
	"github.com/avasquez/dental-api/pkg/auth"
	"github.com/avasquez/dental-api/pkg/logger"
	"github.com/avasquez/dental-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	if err := model.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Initialize database
	db, err := sqlite.NewDB(sqlite.Config{
		Path:           cfg.Database.Path,
		BusyTimeoutMS:  cfg.Database.BusyTimeoutMS,
		MaxOpenConns:   cfg.Database.MaxOpenConns,
		JournalModeWAL: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	base := sqlite.NewBaseRepository(db)
	userRepo := sqlite.NewUserRepository(base)
	patientRepo := sqlite.NewPatientRepository(base)
	appointmentRepo := sqlite.NewAppointmentRepository(base)
	treatmentRepo := sqlite.NewTreatmentRepository(base)
	recordRepo := sqlite.NewTreatmentRecordRepository(base)
	invoiceRepo := sqlite.NewInvoiceRepository(base)
	paymentRepo := sqlite.NewPaymentRepository(base)
	dashboardRepo := sqlite.NewDashboardRepository(base)

	// Initialize services
	hasher := security.NewBcryptHasher(12)
	tokens := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry(),
		RefreshExpiry: cfg.JWT.RefreshExpiry(),
	})

	mailer := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	userSvc := userService.NewService(userRepo, hasher)
	authSvc := authService.NewService(userRepo, hasher, tokens)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, mailer)
	treatmentSvc := treatmentService.NewService(treatmentRepo, recordRepo, patientRepo)
	billingSvc := billingService.NewService(billingService.Config{
		TaxRate:        cfg.Billing.TaxRate,
		PaymentTerms:   cfg.Billing.PaymentTerms,
		DueInDays:      cfg.Billing.DueInDays,
		NumberTemplate: cfg.Billing.NumberTemplate,
	}, invoiceRepo, paymentRepo, recordRepo, patientRepo, mailer)
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	created, err := userSvc.EnsureDefaultAdmin(context.Background(),
		cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin user")
	}
	if created {
		log.Warn().Str("username", cfg.Bootstrap.AdminUsername).
			Msg("created default admin account, change its password immediately")
	}

	renderer := pdf.NewInvoiceRenderer(pdf.ClinicInfo{
		Name:    cfg.Clinic.Name,
		Address: cfg.Clinic.Address,
		Phone:   cfg.Clinic.Phone,
		Email:   cfg.Clinic.Email,
	})

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewHandler(userSvc)
	patientH := patientHandler.NewHandler(patientSvc, treatmentSvc, billingSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	treatmentH := treatmentHandler.NewHandler(treatmentSvc)
	billingH := billingHandler.NewHandler(billingSvc, patientSvc, renderer, mailer)
	dashboardH := dashboardHandler.NewHandler(dashboardSvc, appointmentSvc)
	healthH := healthHandler.NewHandler(db)

	r := router.NewRouter(
		authMiddleware,
		authH,
		userH,
		patientH,
		appointmentH,
		treatmentH,
		billingH,
		dashboardH,
		healthH,
		h,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:     middleware.DefaultCORSConfig(),
			ReleaseMode:    cfg.Server.ReleaseMode,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runOverdueSweep(sweepCtx, billingSvc, cfg.Billing.SweepInterval)

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// runOverdueSweep periodically flips past-due invoices to overdue so
// the status is current even when nobody triggers the sweep by hand.
func runOverdueSweep(ctx context.Context, svc *billingService.Service, intervalMinutes int) {
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := svc.SweepOverdue(ctx)
			if err != nil {
				log.Error().Err(err).Msg("overdue sweep failed")
				continue
			}
			if count > 0 {
				log.Info().Int64("count", count).Msg("invoices marked overdue")
			}
		}
	}
}
