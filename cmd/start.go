package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"synchub/core/config"
	"synchub/core/database"
	"synchub/core/loader"
	"synchub/core/logger"
	"synchub/core/middleware/auth"
	"synchub/core/middleware/rayid"
	"synchub/core/nango"
	"synchub/core/reconcile"
	"synchub/core/storage"

	"synchub/feature/connections"
	"synchub/feature/contacts"
	"synchub/feature/documents"
	"synchub/feature/files"
	"synchub/feature/webhook"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "synchub/docs/swagger"
)

// @title SyncHub API
// @version 1.0
// @description Webhook-driven replication of integration data into a local database.
// @host localhost:3003
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server, connects to the platform and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Platform Client
		client, err := nango.NewClient(cfg.Nango, logg)
		if err != nil {
			logg.Fatal("Failed to create platform client", zap.Error(err))
		}

		// 5. Object Storage (Optional; disables the document archive when absent)
		var store storage.Client
		if cfg.Storage.Enabled() {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 6. Reconcile Engine and Services
		engine := reconcile.NewEngine(db, logg)

		contactService := contacts.NewService(db, client, engine, logg)
		fileService := files.NewService(db, engine, logg)

		connectionStore := connections.NewStore(db)

		var archiver *documents.Archiver
		if store != nil {
			archiver = documents.NewArchiver(client, store, cfg.Storage.Bucket, logg)
		}

		// The document service disconnects through the connection service; the
		// connection service purges through the document service. Both edges
		// go through interfaces, so wiring order is the only subtlety here.
		var connectionService *connections.Service
		documentService := documents.NewService(db, engine, archiver, disconnectorFunc(func(ctx context.Context, userID, integration string) error {
			return connectionService.Disconnect(ctx, userID, integration)
		}), logg)
		connectionService = connections.NewService(connectionStore, client, logg,
			contactService, documentService, fileService)

		dispatcher := webhook.NewDispatcher(client, connectionService, logg,
			contacts.NewProcessor(client, engine, logg),
			documents.NewProcessor(client, engine, logg),
			files.NewProcessor(client, engine, logg))

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. CORS for the demo frontend
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))

		// 3. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Webhook intake (before the API key guard: the platform
		// authenticates with the payload signature, not the key)
		mgr := loader.NewManager()
		mgr.Register(webhook.NewFeature(dispatcher, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load webhook feature", zap.Error(err))
		}

		// 5. Auth (Protect the read API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		mgr = loader.NewManager()
		mgr.Register(connections.NewFeature(db, connectionService, logg))
		mgr.Register(contacts.NewFeature(db, contactService, logg))
		mgr.Register(documents.NewFeature(db, documentService, logg))
		mgr.Register(files.NewFeature(db, fileService, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// disconnectorFunc adapts a closure to documents.Disconnector so the
// mutually dependent services can be wired without an import cycle.
type disconnectorFunc func(ctx context.Context, userID, integration string) error

func (f disconnectorFunc) Disconnect(ctx context.Context, userID, integration string) error {
	return f(ctx, userID, integration)
}

func init() {
	RootCmd.AddCommand(startCmd)
}
