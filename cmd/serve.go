package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/annotations"
	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/browse"
	"github.com/ziadkadry99/research-reader/internal/chat"
	"github.com/ziadkadry99/research-reader/internal/config"
	"github.com/ziadkadry99/research-reader/internal/db"
	"github.com/ziadkadry99/research-reader/internal/pages"
	"github.com/ziadkadry99/research-reader/internal/server"
)

// browseIdle is how long an untouched browse state survives.
const browseIdle = 30 * time.Minute

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reader web server",
	Long:  `Starts the reader web interface: topic browsing, document search, article summaries and the article assistant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		client := newBackend(cfg, logger)

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowAll:       cfg.AllowAllOrigins,
			RequestTimeout: cfg.RequestTimeout(),
		}, database, client, logger)

		registerAllRoutes(srv, cfg, client)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("reader starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("backend", client.BaseURL()),
			zap.String("database", database.Path()),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

// openDatabase opens the SQLite file under the data dir, or an in-memory
// database when no data dir is configured.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	if cfg.DataDir == "" {
		return db.OpenMemory()
	}
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// registerAllRoutes wires up every feature's routes.
func registerAllRoutes(srv *server.Server, cfg *config.Config, client *backend.CategoryCache) {
	r := srv.Router()
	logger := srv.Logger()

	// Annotations (read and favorite flags)
	annotationStore := annotations.NewSQLStore(srv.Database())
	annotations.RegisterRoutes(r, annotationStore, logger.Named("annotations"))

	// Article assistant
	chatSvc := chat.NewService(chat.NewStore(srv.Database()), client, logger.Named("chat"))
	chat.RegisterRoutes(r, chatSvc, logger.Named("chat"))

	// Views
	registry := browse.NewRegistry(client, cfg.SearchLimit, browseIdle, logger.Named("browse"))
	views := pages.New(client, registry, annotationStore, chatSvc, logger.Named("pages"), pages.Options{
		SiteName: cfg.SiteName,
	})
	pages.RegisterRoutes(r, views)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
