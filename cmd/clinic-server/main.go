package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fertilia/clinic/internal/config"
	"github.com/fertilia/clinic/internal/domain/appointment"
	"github.com/fertilia/clinic/internal/domain/dashboard"
	"github.com/fertilia/clinic/internal/domain/diagnosis"
	"github.com/fertilia/clinic/internal/domain/doctor"
	"github.com/fertilia/clinic/internal/domain/medication"
	"github.com/fertilia/clinic/internal/domain/patient"
	"github.com/fertilia/clinic/internal/domain/procedure"
	"github.com/fertilia/clinic/internal/domain/testresult"
	"github.com/fertilia/clinic/internal/domain/treatment"
	"github.com/fertilia/clinic/internal/domain/user"
	"github.com/fertilia/clinic/internal/platform/auth"
	"github.com/fertilia/clinic/internal/platform/cache"
	"github.com/fertilia/clinic/internal/platform/db"
	"github.com/fertilia/clinic/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Fertility clinic record-keeping API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

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

			migrator := db.NewMigrator(pool, cfg.MigrationsDir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			migrator := db.NewMigrator(pool, cfg.MigrationsDir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
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
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the diagnosis question catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			useDefault, _ := cmd.Flags().GetBool("default")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.SeedFile
			}

			var questions []*diagnosis.Question
			if useDefault {
				questions = diagnosis.DefaultCatalog()
			} else {
				questions, err = diagnosis.LoadCatalogFile(file)
				if err != nil {
					return err
				}
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			redisCache, err := cache.New(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer redisCache.Close()

			svc := diagnosis.NewService(
				diagnosis.NewQuestionRepoPG(pool),
				diagnosis.NewResultRepoPG(pool),
				patient.NewRepoPG(pool),
				func(ctx context.Context, fn func(ctx context.Context) error) error {
					return db.WithTx(ctx, pool, fn)
				},
				redisCache,
				time.Duration(cfg.StatsCacheTTL)*time.Second,
			)
			if err := svc.SeedCatalog(ctx, questions); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}

			fmt.Printf("Seeded %d question(s).\n", len(questions))
			return nil
		},
	}
	cmd.Flags().String("file", "", "Path to the catalog JSON (defaults to SEED_FILE)")
	cmd.Flags().Bool("default", false, "Seed the built-in default catalog")
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	redisCache, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisCache.Close()
	if redisCache.Enabled() {
		logger.Info().Msg("redis cache enabled")
	}

	jwtCfg := auth.JWTConfig{
		SigningKey: []byte(cfg.JWTSecret),
		Issuer:     "clinic-server",
		TokenTTL:   time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", db.HealthHandler(pool))

	// Login stays outside the auth middleware.
	public := e.Group("/api/v1")

	apiV1 := e.Group("/api/v1")
	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set, running with permissive dev auth")
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.JWTMiddleware(jwtCfg))
	}

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	public.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Repositories
	patientRepo := patient.NewRepoPG(pool)
	doctorRepo := doctor.NewRepoPG(pool)
	treatmentRepo := treatment.NewRepoPG(pool)
	appointmentRepo := appointment.NewRepoPG(pool)
	medicationRepo := medication.NewRepoPG(pool)
	testResultRepo := testresult.NewRepoPG(pool)
	procedureRepo := procedure.NewRepoPG(pool)
	userRepo := user.NewRepoPG(pool)
	questionRepo := diagnosis.NewQuestionRepoPG(pool)
	resultRepo := diagnosis.NewResultRepoPG(pool)
	dashboardRepo := dashboard.NewRepoPG(pool)

	runTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTx(ctx, pool, fn)
	}
	statsTTL := time.Duration(cfg.StatsCacheTTL) * time.Second

	// Services
	patientSvc := patient.NewService(patientRepo)
	doctorSvc := doctor.NewService(doctorRepo)
	treatmentSvc := treatment.NewService(treatmentRepo)
	appointmentSvc := appointment.NewService(appointmentRepo)
	medicationSvc := medication.NewService(medicationRepo)
	testResultSvc := testresult.NewService(testResultRepo)
	procedureSvc := procedure.NewService(procedureRepo)
	userSvc := user.NewService(userRepo, jwtCfg)
	diagnosisSvc := diagnosis.NewService(questionRepo, resultRepo, patientRepo, runTx, redisCache, statsTTL)
	dashboardSvc := dashboard.NewService(dashboardRepo, redisCache, statsTTL)

	// Handlers
	userHandler := user.NewHandler(userSvc)
	userHandler.RegisterPublicRoutes(public)
	userHandler.RegisterRoutes(apiV1)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	doctor.NewHandler(doctorSvc).RegisterRoutes(apiV1)
	treatment.NewHandler(treatmentSvc).RegisterRoutes(apiV1)
	appointment.NewHandler(appointmentSvc).RegisterRoutes(apiV1)
	medication.NewHandler(medicationSvc).RegisterRoutes(apiV1)
	testresult.NewHandler(testResultSvc).RegisterRoutes(apiV1)
	procedure.NewHandler(procedureSvc).RegisterRoutes(apiV1)
	diagnosis.NewHandler(diagnosisSvc).RegisterRoutes(apiV1)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
