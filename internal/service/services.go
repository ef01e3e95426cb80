package service

import (
	"github.com/MKhiriev/evently/internal/adapter"
	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/crypto"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
)

// Services groups every business service the transport layer depends on.
type Services struct {
	AuthService    AuthService
	UserService    UserService
	EventService   EventService
	TicketService  TicketService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, sender adapter.EmailSender, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			sender,
			crypto.NewPasswordHasher(crypto.DefaultBcryptCost),
			crypto.NewSecretGenerator(),
			cfg.App,
			logger,
		),
		UserService:    NewUserService(storages.UserRepository, logger),
		EventService:   NewEventService(storages.EventRepository, storages.ImageStorage, logger),
		TicketService:  NewTicketService(storages.TicketRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
