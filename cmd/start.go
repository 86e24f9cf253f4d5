package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"circulation/core/loader"
	"circulation/core/logger"
	"circulation/core/middleware/auth"
	"circulation/core/middleware/bearer"
	"circulation/core/middleware/rayid"
	"circulation/feature/audit"
	"circulation/feature/fines"
	"circulation/feature/ledger"
	"circulation/feature/loans"
	"circulation/feature/recommendations"
	"circulation/feature/reservations"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "circulation/docs/swagger"
)

// @title Circulation API
// @version 1.0
// @description Lending, reservation queues and overdue fines for a library catalogue.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var migrateOnStart bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the circulation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := bootstrap(context.Background(), ".")
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer svc.Close()

		logg := svc.logger
		zap.ReplaceGlobals(logg)

		if migrateOnStart {
			if err := ledger.Migrate(context.Background(), svc.db); err != nil {
				logg.Fatal("Failed to migrate ledger", zap.Error(err))
			}
			logg.Info("Ledger schema migrated")
		}

		json := jsoniter.ConfigCompatibleWithStandardLibrary
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           svc.cfg.Server.ReadTimeout(),
			WriteTimeout:          svc.cfg.Server.WriteTimeout(),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			err := c.Next()
			l := logger.WithRayID(logg, c)
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		// Operator routes answer before the bearer check is installed.
		app.Use("/audit", auth.New(auth.Config{ApiKey: svc.cfg.Server.ApiKey}))
		ops := loader.NewManager(logg)
		ops.Register(audit.NewFeature(svc.audit, svc.cfg.Server.OperatorEndpointsEnabled()))
		if err := ops.LoadAll(app); err != nil {
			logg.Fatal("Failed to load operator features", zap.Error(err))
		}

		app.Use(bearer.New(svc.cfg.Auth))
		api := loader.NewManager(logg)
		api.Register(loans.NewFeature(svc.loans, logg))
		api.Register(reservations.NewFeature(svc.reservations, logg))
		api.Register(fines.NewFeature(svc.fines, logg))
		api.Register(recommendations.NewFeature(svc.recommendations, logg))
		if err := api.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", svc.cfg.Server.Port))
			if err := app.Listen(svc.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(svc.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Graceful shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	startCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Create or update the ledger tables before serving")
	RootCmd.AddCommand(startCmd)
}
