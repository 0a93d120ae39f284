package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/anamnesis"
	"github.com/clinic/clinic/internal/domain/appointment"
	"github.com/clinic/clinic/internal/domain/assessment"
	"github.com/clinic/clinic/internal/domain/catalog"
	"github.com/clinic/clinic/internal/domain/client"
	"github.com/clinic/clinic/internal/domain/notice"
	"github.com/clinic/clinic/internal/domain/personnel"
	"github.com/clinic/clinic/internal/domain/sessionnote"
	"github.com/clinic/clinic/internal/domain/settings"
	"github.com/clinic/clinic/internal/platform/aireport"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/blobstore"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/middleware"
	"github.com/clinic/clinic/internal/platform/notification"
	"github.com/clinic/clinic/internal/platform/webhook"
	"github.com/clinic/clinic/internal/platform/websocket"
	"github.com/clinic/clinic/internal/scoring"
)

// directoryAdapter resolves client and personnel display data for the
// reminder fan-out and AI report prompts without coupling those packages to
// each other.
type directoryAdapter struct {
	clients   *client.Service
	personnel *personnel.Service
}

func (a *directoryAdapter) ClientContact(ctx context.Context, id uuid.UUID) (string, string, error) {
	cl, err := a.clients.GetClient(ctx, id)
	if err != nil {
		return "", "", err
	}
	phone := ""
	if cl.Phone != nil {
		phone = *cl.Phone
	}
	return cl.FullName(), phone, nil
}

func (a *directoryAdapter) PersonnelName(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := a.personnel.GetPersonnel(ctx, id)
	if err != nil {
		return "", err
	}
	return p.FullName(), nil
}

func (a *directoryAdapter) ClientName(ctx context.Context, id uuid.UUID) (string, error) {
	cl, err := a.clients.GetClient(ctx, id)
	if err != nil {
		return "", err
	}
	return cl.FullName(), nil
}

// fanoutPublisher forwards every domain event to the websocket hub and, in
// the background, to any registered webhook endpoints.
type fanoutPublisher struct {
	hub      *websocket.Hub
	webhooks *webhook.Manager
	log      zerolog.Logger
}

func (p *fanoutPublisher) Publish(ctx context.Context, ev websocket.Event) error {
	if err := p.hub.Publish(ctx, ev); err != nil {
		p.log.Error().Err(err).Str("event", ev.Type).Msg("websocket publish failed")
	}
	go func() {
		deliverCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p.webhooks.Deliver(deliverCtx, webhook.Event{
			ID:        uuid.New().String(),
			Type:      ev.Type,
			Resource:  ev.Resource,
			ResID:     ev.ResID,
			Payload:   ev.Data,
			Timestamp: ev.Timestamp,
		})
	}()
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic practice management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.Audit(logger))
	e.Use(middleware.BodyLimit("1MB", "25MB"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.JWTSecret),
			Skipper:    auth.AuthSkipper,
		}))
	}

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// API groups
	apiV1 := e.Group("/api/v1")
	authGroup := e.Group("/api/auth")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Realtime hub and webhook fan-out
	hub := websocket.NewHub(logger)
	wsHandler := websocket.NewWebSocketHandler(hub)
	wsHandler.RegisterRoutes(apiV1)

	webhookStore := webhook.NewMemoryStore()
	webhookMgr := webhook.NewManager(webhookStore, logger)
	events := &fanoutPublisher{hub: hub, webhooks: webhookMgr, log: logger}

	// Token issuer shared by staff login and the client portal
	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Clients
	clientRepo := client.NewRepo(pool)
	clientSvc := client.NewService(clientRepo)
	clientHandler := client.NewHandler(clientSvc)
	clientHandler.RegisterRoutes(apiV1)
	portalHandler := client.NewPortalHandler(clientSvc, issuer)
	portalHandler.RegisterAuthRoutes(authGroup)

	// Personnel
	personnelRepo := personnel.NewRepo(pool)
	personnelSvc := personnel.NewService(personnelRepo)
	personnelHandler := personnel.NewHandler(personnelSvc, issuer)
	personnelHandler.RegisterRoutes(apiV1)
	personnelHandler.RegisterAuthRoutes(authGroup)

	directory := &directoryAdapter{clients: clientSvc, personnel: personnelSvc}

	// Settings
	settingsRepo := settings.NewRepo(pool)
	settingsSvc := settings.NewService(settingsRepo, logger)
	settingsHandler := settings.NewHandler(settingsSvc)
	settingsHandler.RegisterRoutes(apiV1)

	// Notifications. Sender config is read from the settings row per send so
	// admin changes apply without a restart; the repo is used directly because
	// the service masks secrets.
	waSender := notification.NewHTTPWhatsAppSender(func(ctx context.Context) (notification.WhatsAppConfig, error) {
		st, err := settingsRepo.Get(ctx)
		if err != nil {
			return notification.WhatsAppConfig{}, err
		}
		return notification.WhatsAppConfig{
			Enabled: st.WhatsAppEnabled,
			APIURL:  st.WhatsAppAPIURL,
			Token:   st.WhatsAppToken,
			Sender:  st.WhatsAppSender,
		}, nil
	})
	smsSender := notification.NewHTTPSMSSender(func(ctx context.Context) (notification.SMSConfig, error) {
		st, err := settingsRepo.Get(ctx)
		if err != nil {
			return notification.SMSConfig{}, err
		}
		return notification.SMSConfig{
			Enabled:  st.SMSEnabled,
			Provider: st.SMSProvider,
			Key:      st.SMSKey,
		}, nil
	})
	notifier := notification.NewNotificationManager(smsSender, waSender, notification.NewTemplateEngine())
	notifHandler := notification.NewNotificationHandler(notifier)
	notifHandler.RegisterRoutes(apiV1.Group("", auth.RequireStaff()))

	// Service catalog
	catalogRepo := catalog.NewRepo(pool)
	catalogMgr := catalog.NewManager(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogMgr)
	catalogHandler.RegisterRoutes(apiV1)

	// Appointments
	aptRepo := appointment.NewRepo(pool)
	aptSvc := appointment.NewService(aptRepo)
	aptSvc.SetPublisher(events)
	aptHandler := appointment.NewHandler(aptSvc)
	aptHandler.RegisterRoutes(apiV1)
	reminder := appointment.NewReminder(aptSvc, directory, notifier, logger)

	// Scoring engine and AI reports
	registry := scoring.DefaultRegistry()
	engine := scoring.NewEngine(registry)
	aiClient := aireport.NewClient(aireport.Config{
		Endpoint: cfg.AIEndpoint,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
	})

	// Assessments
	assessRepo := assessment.NewRepo(pool)
	assessSvc := assessment.NewService(assessRepo, registry, engine, aiClient, directory)
	assessSvc.SetPublisher(events)
	assessHandler := assessment.NewHandler(assessSvc)
	assessHandler.RegisterRoutes(apiV1)

	// Session notes
	noteRepo := sessionnote.NewRepo(pool)
	noteSvc := sessionnote.NewService(noteRepo)
	noteHandler := sessionnote.NewHandler(noteSvc)
	noteHandler.RegisterRoutes(apiV1)

	// Anamnesis forms with document uploads
	blobStore, err := blobstore.NewDiskBlobStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to open upload directory")
	}
	anamRepo := anamnesis.NewRepo(pool)
	anamSvc := anamnesis.NewService(anamRepo, blobStore)
	anamHandler := anamnesis.NewHandler(anamSvc)
	anamHandler.RegisterRoutes(apiV1)

	blobHandler := blobstore.NewBlobHandler(blobStore)
	blobHandler.RegisterRoutes(apiV1.Group("", auth.RequireStaff()))

	// Notices
	noticeRepo := notice.NewRepo(pool)
	noticeSvc := notice.NewService(noticeRepo)
	noticeSvc.SetPublisher(events)
	noticeHandler := notice.NewHandler(noticeSvc)
	noticeHandler.RegisterRoutes(apiV1)

	// Webhook management endpoints (admin only)
	webhookHandler := webhook.NewHandler(webhookMgr)
	webhookHandler.RegisterRoutes(apiV1.Group("", auth.RequireRole(auth.RoleAdmin)))

	// Client self-booking rides on the appointment service, so conflicts and
	// calendar broadcasts apply to portal bookings too.
	selfBooking := appointment.NewSelfBooking(aptSvc, appointment.DefaultSelfBookConfig())
	selfBookHandler := appointment.NewSelfBookHandler(selfBooking)
	selfBookHandler.RegisterRoutes(apiV1)

	// Daily reminder fan-out
	reminderCtx, stopReminders := context.WithCancel(context.Background())
	defer stopReminders()
	go runReminderLoop(reminderCtx, reminder, settingsRepo, cfg.ReminderHour, logger)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		var err error
		if cfg.TLSEnabled {
			err = e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = e.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// runReminderLoop fires appointment reminders once a day at the configured
// hour. The hour is re-read from settings before each tick so an admin
// change applies to the next day.
func runReminderLoop(ctx context.Context, reminder *appointment.Reminder, repo settings.Repository, fallbackHour int, logger zerolog.Logger) {
	for {
		hour := fallbackHour
		if st, err := repo.Get(ctx); err == nil && st.ReminderHour >= 0 && st.ReminderHour <= 23 {
			hour = st.ReminderHour
		}

		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		sent, err := reminder.SendDue(ctx, next)
		if err != nil {
			logger.Error().Err(err).Msg("reminder run failed")
			continue
		}
		logger.Info().Int("sent", sent).Msg("appointment reminders dispatched")
	}
}
