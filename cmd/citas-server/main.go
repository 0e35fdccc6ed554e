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

	"github.com/clinisys/citas-api/internal/config"
	"github.com/clinisys/citas-api/internal/domain/cita"
	"github.com/clinisys/citas-api/internal/domain/doctor"
	"github.com/clinisys/citas-api/internal/domain/estadisticas"
	"github.com/clinisys/citas-api/internal/domain/paciente"
	"github.com/clinisys/citas-api/internal/platform/middleware"
	"github.com/clinisys/citas-api/internal/platform/sandbox"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "citas-server",
		Short: "API de gestión de citas médicas",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the appointment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic demo data (overwrites existing collections)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			seedCfg := sandbox.DefaultSeedConfig()
			seedCfg.Pacientes, _ = cmd.Flags().GetInt("pacientes")
			seedCfg.Doctores, _ = cmd.Flags().GetInt("doctores")
			seedCfg.Citas, _ = cmd.Flags().GetInt("citas")
			seedCfg.Seed, _ = cmd.Flags().GetInt64("seed")

			result, err := sandbox.NewSeeder(cfg.DataDir).Run(seedCfg)
			if err != nil {
				return err
			}
			cmd.Printf("Seeded %d pacientes, %d doctores, %d citas into %s\n",
				result.Pacientes, result.Doctores, result.Citas, cfg.DataDir)
			return nil
		},
	}
	defaults := sandbox.DefaultSeedConfig()
	cmd.Flags().Int("pacientes", defaults.Pacientes, "Number of patients to generate")
	cmd.Flags().Int("doctores", defaults.Doctores, "Number of doctors to generate")
	cmd.Flags().Int("citas", defaults.Citas, "Number of appointments to generate")
	cmd.Flags().Int64("seed", defaults.Seed, "Random seed for reproducible data")
	return cmd
}

func runServer() error {
	// Config comes first so the logger format can follow ENV from .env.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
	}))

	// Repositories over the JSON store
	pacienteRepo := paciente.NewJSONRepository(cfg.DataDir)
	doctorRepo := doctor.NewJSONRepository(cfg.DataDir)
	citaRepo := cita.NewJSONRepository(cfg.DataDir)

	// Services
	pacienteSvc := paciente.NewService(pacienteRepo)
	doctorSvc := doctor.NewService(doctorRepo)
	citaSvc := cita.NewService(citaRepo, pacienteRepo, doctorRepo)
	statsSvc := estadisticas.NewService(citaRepo, doctorRepo)

	// Routes
	paciente.NewHandler(pacienteSvc).RegisterRoutes(e)
	doctor.NewHandler(doctorSvc).RegisterRoutes(e)
	cita.NewHandler(citaSvc).RegisterRoutes(e)
	estadisticas.NewHandler(statsSvc).RegisterRoutes(e)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"mensaje":   "API de Sistema de Citas Médicas funcionando",
			"version":   version,
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"endpoints": map[string]string{
				"pacientes":    "/pacientes",
				"doctores":     "/doctores",
				"citas":        "/citas",
				"estadisticas": "/estadisticas",
			},
		})
	})

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("data_dir", cfg.DataDir).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
