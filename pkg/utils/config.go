package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Mail     MailConfig
	Twilio   TwilioConfig
	Facebook FacebookConfig
}

type AppConfig struct {
	Name             string
	Port             string
	Debug            bool
	LogPath          string
	PublicURL        string
	VerificationURL  string // pattern containing a {verification_token} placeholder
	ApplicationTitle string
	DeletedDomain    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type MailConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FromName    string
	TemplateDir string
}

type TwilioConfig struct {
	SID         string
	Token       string
	From        string
	BaseURL     string
	DownloadURL string
}

type FacebookConfig struct {
	GraphURL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("TEMPLATE_DIR", "resources")
	viper.SetDefault("DELETED_DOMAIN", "example.com")
	viper.SetDefault("TWILIO_BASE_URL", "https://api.twilio.com")
	viper.SetDefault("FACEBOOK_GRAPH_URL", "https://graph.facebook.com")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:             viper.GetString("APP_NAME"),
			Port:             viper.GetString("PORT"),
			Debug:            viper.GetBool("DEBUG"),
			LogPath:          viper.GetString("LOG_PATH"),
			PublicURL:        viper.GetString("PUBLIC_URL"),
			VerificationURL:  viper.GetString("VERIFICATION_TOKEN_URL"),
			ApplicationTitle: viper.GetString("APPLICATION_TITLE"),
			DeletedDomain:    viper.GetString("DELETED_DOMAIN"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Mail: MailConfig{
			Host:        viper.GetString("SMTP_HOST"),
			Port:        viper.GetInt("SMTP_PORT"),
			User:        viper.GetString("SMTP_USER"),
			Password:    viper.GetString("SMTP_PASS"),
			From:        viper.GetString("EMAIL_FROM"),
			FromName:    viper.GetString("EMAIL_FROM_NAME"),
			TemplateDir: viper.GetString("TEMPLATE_DIR"),
		},
		Twilio: TwilioConfig{
			SID:         viper.GetString("TWILIO_SID"),
			Token:       viper.GetString("TWILIO_TOKEN"),
			From:        viper.GetString("TWILIO_FROM"),
			BaseURL:     viper.GetString("TWILIO_BASE_URL"),
			DownloadURL: viper.GetString("MOBILE_SMS_URL"),
		},
		Facebook: FacebookConfig{
			GraphURL: viper.GetString("FACEBOOK_GRAPH_URL"),
		},
	}

	return config, nil
}
