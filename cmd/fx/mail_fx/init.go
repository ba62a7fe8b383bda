package mail_fx

import (
	"log"
	"os"
	"strconv"

	"finsight/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	provideMailService)

func provideMailService() services.IMailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	instance, err := services.NewSMTPMailService(services.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Finsight",
		AppName:  "Finsight",
	})
	if err != nil {
		log.Printf("Error initializing mail service: %v", err)
	}

	return instance
}
