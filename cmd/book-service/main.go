package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/bookverse/backend/auth"
	"github.com/bookverse/backend/books"
	"github.com/bookverse/backend/config"
	"github.com/bookverse/backend/imagehost"
	"github.com/bookverse/backend/rest"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("book-service"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	logger := lgr.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireCloudinary(); err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logger.Debug("configuration loaded", "config", print.MaybeHighlightJSON(cfg.Redacted()))

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := books.CreateSchema(ctx, db); err != nil {
		logger.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(
		[]byte(cfg.JWTSecretKey),
		cfg.JWTAlgorithm,
		cfg.TokenLifetime(),
		lgr.GetLogger("tokens"),
	)
	if err != nil {
		logger.Error("failed to build token service", "error", err)
		os.Exit(1)
	}

	uploader, err := imagehost.NewCloudinary(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryFolder,
	)
	if err != nil {
		logger.Error("failed to build image host client", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName: "bookverse-books",
		// leave headroom above the upload cap so the handler can
		// answer with its own message instead of a bare 413
		BodyLimit: 2 * books.MaxImageUploadBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return rest.FailFromError(c, err)
		},
	})
	app.Use(recover.New())

	books.NewController(books.NewBooks(db), uploader).
		WithLogger(lgr.GetLogger("books:ctrl")).
		RegisterRoutes(app, auth.RequireToken(tokens))

	go func() {
		if err := app.Listen(cfg.ServerAddress); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("book service listening", "address", cfg.ServerAddress)

	waitExitSignal()
	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
