package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		TokenDuration        Duration `json:"token_duration"`
		Environment          string   `json:"environment"`
		VerificationURL      string   `json:"verification_url"`
		AllowUnverifiedLogin bool     `json:"allow_unverified_login"`
		AllowResetWithoutOTP bool     `json:"allow_reset_without_otp"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver string `json:"driver"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Mongo struct {
			URI      string `json:"uri"`
			Database string `json:"database"`
		} `json:"mongo,omitempty"`

		Images struct {
			Endpoint  string `json:"endpoint"`
			Region    string `json:"region"`
			Bucket    string `json:"bucket"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			PublicURL string `json:"public_url"`
		} `json:"images,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
		RateLimit      int      `json:"rate_limit"`
		RateWindow     Duration `json:"rate_window"`
	} `json:"server,omitempty"`

	Mail struct {
		Provider string `json:"provider"`
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
		APIURL   string `json:"api_url"`
		APIKey   string `json:"api_key"`
	} `json:"mail,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	app, storage, server, mail := jsonCfg.App, jsonCfg.Storage, jsonCfg.Server, jsonCfg.Mail

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         app.TokenSignKey,
			TokenIssuer:          app.TokenIssuer,
			TokenDuration:        time.Duration(app.TokenDuration),
			Environment:          app.Environment,
			VerificationURL:      app.VerificationURL,
			AllowUnverifiedLogin: app.AllowUnverifiedLogin,
			AllowResetWithoutOTP: app.AllowResetWithoutOTP,
			Version:              app.Version,
		},
		Storage: Storage{
			Driver: storage.Driver,
			DB: DB{
				DSN: storage.DB.DSN,
			},
			Mongo: Mongo{
				URI:      storage.Mongo.URI,
				Database: storage.Mongo.Database,
			},
			Images: Images{
				Endpoint:  storage.Images.Endpoint,
				Region:    storage.Images.Region,
				Bucket:    storage.Images.Bucket,
				AccessKey: storage.Images.AccessKey,
				SecretKey: storage.Images.SecretKey,
				PublicURL: storage.Images.PublicURL,
			},
		},
		Server: Server{
			HTTPAddress:    server.HTTPAddress,
			GRPCAddress:    server.GRPCAddress,
			RequestTimeout: time.Duration(server.RequestTimeout),
			AllowedOrigins: server.AllowedOrigins,
			RateLimit:      server.RateLimit,
			RateWindow:     time.Duration(server.RateWindow),
		},
		Mail: Mail{
			Provider: mail.Provider,
			Host:     mail.Host,
			Port:     mail.Port,
			Username: mail.Username,
			Password: mail.Password,
			From:     mail.From,
			APIURL:   mail.APIURL,
			APIKey:   mail.APIKey,
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
