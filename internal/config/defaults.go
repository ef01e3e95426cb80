package config

import "time"

const (
	EnvironmentProduction = "production"

	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	MailProviderSMTP = "smtp"
	MailProviderHTTP = "http"
)

const (
	defaultTokenIssuer   = "evently"
	defaultTokenDuration = 7 * 24 * time.Hour
	defaultVerifyURL     = "http://localhost:8080/api/users/verify-email"
	defaultMongoDatabase = "defaultDB"
	defaultHTTPAddress   = "0.0.0.0:8080"
	defaultRateLimit     = 100
	defaultRateWindow    = 15 * time.Minute
	defaultSMTPPort      = 587
)

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://evently-ems.vercel.app",
}

// applyDefaults fills the settings every deployment needs but rarely sets.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.VerificationURL == "" {
		cfg.App.VerificationURL = defaultVerifyURL
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverPostgres
	}
	if cfg.Storage.Mongo.Database == "" {
		cfg.Storage.Mongo.Database = defaultMongoDatabase
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = append([]string(nil), defaultAllowedOrigins...)
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = defaultRateLimit
	}
	if cfg.Server.RateWindow == 0 {
		cfg.Server.RateWindow = defaultRateWindow
	}

	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = MailProviderSMTP
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = defaultSMTPPort
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
}
