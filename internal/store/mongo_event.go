package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEventRepository struct {
	events  *mongo.Collection
	tickets *mongo.Collection
	now     func() time.Time
}

func NewMongoEventRepository(db *MongoDB) EventRepository {
	db.logger.Debug().Msg("creating mongo event repository")
	return &mongoEventRepository{
		events:  db.Collection(eventsCollection),
		tickets: db.Collection(ticketsCollection),
		now:     time.Now,
	}
}

func (r *mongoEventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	doc, ok := newEventDocument(event)
	if !ok {
		return models.Event{}, ErrUserNotFound
	}
	doc.ID = primitive.NewObjectID()
	now := r.now().UTC().Truncate(time.Millisecond)
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.events.InsertOne(ctx, doc); err != nil {
		log.Err(err).Str("func", "*mongoEventRepository.Create").Msg("error inserting event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return doc.toModel(), nil
}

func (r *mongoEventRepository) FindByID(ctx context.Context, id string) (models.Event, error) {
	log := logger.FromContext(ctx)

	oid, ok := objectID(id)
	if !ok {
		return models.Event{}, ErrEventNotFound
	}

	var doc eventDocument
	if err := r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*mongoEventRepository.FindByID").Msg("error finding event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return doc.toModel(), nil
}

func (r *mongoEventRepository) List(ctx context.Context) ([]models.Event, error) {
	return r.list(ctx, "*mongoEventRepository.List", bson.M{})
}

func (r *mongoEventRepository) ListByCreator(ctx context.Context, userID string) ([]models.Event, error) {
	oid, ok := objectID(userID)
	if !ok {
		return []models.Event{}, nil
	}
	return r.list(ctx, "*mongoEventRepository.ListByCreator", bson.M{"createdBy": oid})
}

func (r *mongoEventRepository) Update(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	oid, ok := objectID(event.ID)
	if !ok {
		return models.Event{}, ErrEventNotFound
	}

	doc, ok := newEventDocument(event)
	if !ok {
		return models.Event{}, ErrUserNotFound
	}
	doc.ID = oid
	doc.UpdatedAt = r.now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var replaced eventDocument
	if err := r.events.FindOneAndReplace(ctx, bson.M{"_id": oid}, doc, opts).Decode(&replaced); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*mongoEventRepository.Update").Msg("error replacing event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return replaced.toModel(), nil
}

// Delete removes the event and then its tickets.
func (r *mongoEventRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	oid, ok := objectID(id)
	if !ok {
		return ErrEventNotFound
	}

	res, err := r.events.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Err(err).Str("func", "*mongoEventRepository.Delete").Msg("error deleting event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return ErrEventNotFound
	}

	if _, err = r.tickets.DeleteMany(ctx, bson.M{"eventId": oid}); err != nil {
		log.Err(err).Str("func", "*mongoEventRepository.Delete").Msg("error deleting event tickets")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *mongoEventRepository) list(ctx context.Context, fn string, filter bson.M) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error finding events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var docs []eventDocument
	if err = cursor.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", fn).Msg("error decoding events")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.toModel())
	}

	return events, nil
}
