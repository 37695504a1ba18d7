package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Invite       Invite
	GeminiApiKey string
	FrontendURL  string
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Invite holds the defaults applied to share tokens minted on publish.
type Invite struct {
	TTLDays int // 0 = no expiry
	MaxUses int // 0 = unlimited
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("INVITE_TTL_DAYS", 30)
	viper.SetDefault("INVITE_MAX_USES", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Invite.TTLDays = viper.GetInt("INVITE_TTL_DAYS")
	config.Invite.MaxUses = viper.GetInt("INVITE_MAX_USES")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.FrontendURL = viper.GetString("FRONTEND_URL")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
