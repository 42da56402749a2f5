package main

import (
	"log"

	"loyalty-program/cmd"
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/identity"
	"loyalty-program/internal/notification"
	"loyalty-program/internal/wire"
	"loyalty-program/pkg/database"
	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	mailer, err := notification.NewMailer(config.Mail, logger)
	if err != nil {
		logger.Fatal("Failed to init mailer", zap.Error(err))
	}
	sms := notification.NewTwilioSMS(config.Twilio, logger)
	facebook := identity.NewFacebookClient(config.Facebook.GraphURL, logger)

	app := wire.Wiring(repos, config, mailer, sms, facebook, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
