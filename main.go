package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aesthetic-webworks/agency-site-backend/api"
	"github.com/aesthetic-webworks/agency-site-backend/config"
	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/models"
	"github.com/aesthetic-webworks/agency-site-backend/storage"
)

func main() {
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msgf("Error loading .env file: %v", err)
	}

	c := config.New()

	dsn := config.GetString(c, "DATABASE_URL", "")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// TranslateError turns driver constraint violations into
	// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated, which the errs
	// package maps onto the 4xx domain errors.
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		log.Fatal().Msgf("Error connecting to database: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Msgf("Error migrating database: %v", err)
	}

	images, err := storage.NewImageStore(config.GetString(c, "UPLOAD_DIR", "uploads"))
	if err != nil {
		log.Fatal().Msgf("Error initializing image store: %v", err)
	}

	currentDB := database.New(db)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, images)
	if err != nil {
		log.Fatal().Msgf("Error initializing server: %v", err)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
