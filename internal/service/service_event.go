package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/internal/validators"
	"github.com/MKhiriev/evently/models"
)

const eventDomain = "event"

// allowedImageTypes maps accepted image content types to the extension used
// in the object key.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type eventService struct {
	eventRepository store.EventRepository
	imageStorage    store.ImageStorage
	validator       validators.Validator
	ids             *utils.UUIDGenerator

	logger *logger.Logger
}

func NewEventService(eventRepository store.EventRepository, imageStorage store.ImageStorage, logger *logger.Logger) EventService {
	return &eventService{
		eventRepository: eventRepository,
		imageStorage:    imageStorage,
		validator:       validators.NewEventValidator(),
		ids:             utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	event.ID = ""
	if err := s.validator.Validate(ctx, event); err != nil {
		return models.Event{}, newValidationError(err)
	}

	created, err := s.eventRepository.Create(ctx, event)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error creating event")
		return models.Event{}, mapStoreError(eventDomain, err)
	}

	return created, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (models.Event, error) {
	event, err := s.eventRepository.FindByID(ctx, id)
	if err != nil {
		return models.Event{}, s.storeFailure(ctx, "error finding event", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepository.List(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, "error listing events", err)
	}
	return events, nil
}

func (s *eventService) ListUserEvents(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := s.eventRepository.ListByCreator(ctx, userID)
	if err != nil {
		return nil, s.storeFailure(ctx, "error listing user events", err)
	}
	return events, nil
}

// UpdateEvent merges the JSON patch onto the stored event. Identity and
// ownership fields are never taken from the patch.
func (s *eventService) UpdateEvent(ctx context.Context, id string, patch json.RawMessage) (models.Event, error) {
	current, err := s.eventRepository.FindByID(ctx, id)
	if err != nil {
		return models.Event{}, s.storeFailure(ctx, "error finding event", err)
	}

	next := current
	if err = json.Unmarshal(patch, &next); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("malformed event patch")
		return models.Event{}, newValidationError(ErrInvalidPatch)
	}
	next.ID = current.ID
	next.CreatedBy = current.CreatedBy
	next.CreatedAt = current.CreatedAt

	if err = s.validator.Validate(ctx, next); err != nil {
		return models.Event{}, newValidationError(err)
	}

	updated, err := s.eventRepository.Update(ctx, next)
	if err != nil {
		return models.Event{}, s.storeFailure(ctx, "error updating event", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepository.Delete(ctx, id); err != nil {
		return s.storeFailure(ctx, "error deleting event", err)
	}
	return nil
}

// UploadEventImage stores the image under events/{id}/ and points the event
// at its public URL. Only the creator of the event may replace its image.
func (s *eventService) UploadEventImage(ctx context.Context, id, userID string, image models.ImageUpload) (models.Event, error) {
	log := logger.FromContext(ctx)

	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(image.ContentType))]
	if !ok {
		return models.Event{}, newValidationError(ErrInvalidImageType)
	}

	event, err := s.eventRepository.FindByID(ctx, id)
	if err != nil {
		return models.Event{}, s.storeFailure(ctx, "error finding event", err)
	}
	if event.CreatedBy != userID {
		log.Info().Str("event_id", id).Str("user_id", userID).Msg("image upload by non-owner")
		return models.Event{}, ErrForbidden
	}

	key := path.Join("events", event.ID, s.ids.Generate()+ext)
	url, err := s.imageStorage.Upload(ctx, key, image.ContentType, image.Size, image.Body)
	if err != nil {
		return models.Event{}, s.storeFailure(ctx, "error uploading event image", err)
	}

	event.EventImage = url
	updated, err := s.eventRepository.Update(ctx, event)
	if err != nil {
		return models.Event{}, s.storeFailure(ctx, "error saving event image", err)
	}

	log.Info().Str("event_id", id).Str("key", key).Msg("event image uploaded")
	return updated, nil
}

func (s *eventService) storeFailure(ctx context.Context, msg string, err error) error {
	mapped := mapStoreError(eventDomain, err)
	if !errors.Is(mapped, ErrEventNotFound) {
		logger.FromContext(ctx).Err(err).Msg(msg)
	}
	return mapped
}
