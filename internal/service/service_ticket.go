package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/internal/validators"
	"github.com/MKhiriev/evently/models"
)

const ticketDomain = "ticket"

type ticketService struct {
	ticketRepository store.TicketRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewTicketService(ticketRepository store.TicketRepository, logger *logger.Logger) TicketService {
	return &ticketService{
		ticketRepository: ticketRepository,
		validator:        validators.NewTicketValidator(),
		logger:           logger,
	}
}

// CreateTicket stores a ticket type. The repository rejects tickets whose
// event does not exist with [store.ErrEventNotFound].
func (s *ticketService) CreateTicket(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	ticket.ID = ""
	if err := s.validator.Validate(ctx, ticket); err != nil {
		return models.Ticket{}, newValidationError(err)
	}

	created, err := s.ticketRepository.Create(ctx, ticket)
	if err != nil {
		return models.Ticket{}, s.storeFailure(ctx, "error creating ticket", err)
	}
	return created, nil
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	ticket, err := s.ticketRepository.FindByID(ctx, id)
	if err != nil {
		return models.Ticket{}, s.storeFailure(ctx, "error finding ticket", err)
	}
	return ticket, nil
}

func (s *ticketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.ticketRepository.List(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, "error listing tickets", err)
	}
	return tickets, nil
}

func (s *ticketService) ListEventTickets(ctx context.Context, eventID string) ([]models.Ticket, error) {
	tickets, err := s.ticketRepository.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, s.storeFailure(ctx, "error listing event tickets", err)
	}
	return tickets, nil
}

// UpdateTicket merges the JSON patch onto the stored ticket. A ticket cannot
// be moved to another event.
func (s *ticketService) UpdateTicket(ctx context.Context, id string, patch json.RawMessage) (models.Ticket, error) {
	current, err := s.ticketRepository.FindByID(ctx, id)
	if err != nil {
		return models.Ticket{}, s.storeFailure(ctx, "error finding ticket", err)
	}

	next := current
	if err = json.Unmarshal(patch, &next); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("malformed ticket patch")
		return models.Ticket{}, newValidationError(ErrInvalidPatch)
	}
	next.ID = current.ID
	next.EventID = current.EventID
	next.CreatedAt = current.CreatedAt

	if err = s.validator.Validate(ctx, next); err != nil {
		return models.Ticket{}, newValidationError(err)
	}

	updated, err := s.ticketRepository.Update(ctx, next)
	if err != nil {
		return models.Ticket{}, s.storeFailure(ctx, "error updating ticket", err)
	}
	return updated, nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.ticketRepository.Delete(ctx, id); err != nil {
		return s.storeFailure(ctx, "error deleting ticket", err)
	}
	return nil
}

func (s *ticketService) storeFailure(ctx context.Context, msg string, err error) error {
	mapped := mapStoreError(ticketDomain, err)
	if !errors.Is(mapped, ErrTicketNotFound) && !errors.Is(mapped, ErrEventNotFound) {
		logger.FromContext(ctx).Err(err).Msg(msg)
	}
	return mapped
}
