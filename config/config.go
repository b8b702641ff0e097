package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	LLM      LLM
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

// Auth holds the signing secrets and access policy toggles.
type Auth struct {
	// JWTSecret signs session tokens for credential logins.
	JWTSecret string
	// GrantSecret signs passcode grant tokens. The process refuses to start
	// without one: a missing secret would make every minted grant unverifiable.
	GrantSecret string
	// AllowOwnerlessAdmin preserves the legacy rule that sets without an owner
	// can be administered and deleted by any authenticated requester.
	AllowOwnerlessAdmin bool
}

// LLM holds server-side API keys for the content generation providers.
// Callers may also bring their own key per request.
type LLM struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	ZAIAPIKey       string
	ZAIBaseURL      string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ALLOW_OWNERLESS_ADMIN", true)
	viper.SetDefault("ZAI_BASE_URL", "https://api.z.ai/api/paas/v4")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.GrantSecret = viper.GetString("GRANT_SECRET")
	config.Auth.AllowOwnerlessAdmin = viper.GetBool("ALLOW_OWNERLESS_ADMIN")

	config.LLM.OpenAIAPIKey = viper.GetString("OPENAI_API_KEY")
	config.LLM.AnthropicAPIKey = viper.GetString("ANTHROPIC_API_KEY")
	config.LLM.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	config.LLM.ZAIAPIKey = viper.GetString("ZAI_API_KEY")
	config.LLM.ZAIBaseURL = viper.GetString("ZAI_BASE_URL")

	if config.Auth.GrantSecret == "" {
		return nil, fmt.Errorf("GRANT_SECRET is required: passcode grants cannot be signed without it")
	}
	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required: session tokens cannot be signed without it")
	}

	log.Info().Str("port", config.Server.Port).Str("db", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
