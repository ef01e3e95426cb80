// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The token sign key, the connection settings of the selected store and the
// credentials of the selected mail provider are required.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if err := cfg.Mail.validate(); err != nil {
		return err
	}

	if cfg.Workers.SweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (s Storage) validate() error {
	switch s.Driver {
	case DriverPostgres:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
		}
	case DriverMongo:
		if s.Mongo.URI == "" || s.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo URI and database are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.Driver)
	}

	return nil
}

func (m Mail) validate() error {
	switch m.Provider {
	case MailProviderSMTP:
		if m.Host == "" || m.Username == "" || m.Password == "" {
			return fmt.Errorf("%w: smtp host, username and password are required", ErrInvalidMailConfigs)
		}
	case MailProviderHTTP:
		if m.APIURL == "" || m.APIKey == "" || m.From == "" {
			return fmt.Errorf("%w: api url, api key and sender are required", ErrInvalidMailConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidMailConfigs, m.Provider)
	}

	return nil
}
