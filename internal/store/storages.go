package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
)

// Storages bundles the repositories of the selected backend with the image
// store.
type Storages struct {
	UserRepository   UserRepository
	EventRepository  EventRepository
	TicketRepository TicketRepository
	ImageStorage     ImageStorage

	pinger Pinger
	close  func() error
}

// NewStorages connects to the backend named by cfg.Storage.Driver. For
// postgres the embedded migrations are applied before the repositories are
// returned.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	images, err := NewImageStorage(ctx, cfg.Images, log)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
			return nil, err
		}

		return &Storages{
			UserRepository:   NewUserRepository(db),
			EventRepository:  NewEventRepository(db),
			TicketRepository: NewTicketRepository(db),
			ImageStorage:     images,
			pinger:           db,
			close:            db.Close,
		}, nil

	case config.DriverMongo:
		db, err := NewConnectMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, err
		}

		return &Storages{
			UserRepository:   NewMongoUserRepository(db),
			EventRepository:  NewMongoEventRepository(db),
			TicketRepository: NewMongoTicketRepository(db),
			ImageStorage:     images,
			pinger:           db,
			close:            db.Close,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// Ping checks that the record store is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	return s.pinger.Ping(ctx)
}

// Close releases the backend connections.
func (s *Storages) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
