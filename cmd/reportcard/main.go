package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/noah-isme/gema-reportcard/internal/config"
	"github.com/noah-isme/gema-reportcard/internal/database"
	"github.com/noah-isme/gema-reportcard/internal/repository"
	"github.com/noah-isme/gema-reportcard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Str("app", cfg.AppName).
		Str("env", cfg.AppEnv).
		Str("session_id", uuid.NewString()).
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp(cfg, logger)
	if err := app.RunContext(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

// session bundles what every command needs once the store is open.
type session struct {
	service service.ReportCardService
	logger  zerolog.Logger
}

func newApp(cfg config.Config, logger zerolog.Logger) *cli.App {
	return &cli.App{
		Name:  "reportcard",
		Usage: "record exam marks and compute weighted final scores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "database path (or DSN for postgres)",
				Value: cfg.DatabasePath,
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write prometheus metrics to this file on exit",
			},
		},
		Action: withSession(cfg, logger, runMenu),
		Commands: []*cli.Command{
			addCommand(cfg, logger),
			listCommand(cfg, logger),
			showCommand(cfg, logger),
			exportCommand(cfg, logger),
		},
	}
}

// withSession opens the store for the duration of one command and closes it afterwards.
func withSession(cfg config.Config, logger zerolog.Logger, action func(*cli.Context, *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := database.Connect(cfg.DatabaseDriver, c.String("db"))
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				logger.Warn().Err(err).Msg("failed to close database")
			}
		}()

		validate := validator.New(validator.WithRequiredStructEnabled())
		repo := repository.NewStudentRecordRepository(db)

		rt := &session{
			service: service.NewReportCardService(repo, validate, logger),
			logger:  logger,
		}
		actionErr := action(c, rt)

		if path := c.String("metrics-file"); path != "" {
			if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("failed to write metrics file")
			}
		}
		return actionErr
	}
}
