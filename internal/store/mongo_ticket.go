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

type mongoTicketRepository struct {
	tickets *mongo.Collection
	events  *mongo.Collection
	now     func() time.Time
}

func NewMongoTicketRepository(db *MongoDB) TicketRepository {
	db.logger.Debug().Msg("creating mongo ticket repository")
	return &mongoTicketRepository{
		tickets: db.Collection(ticketsCollection),
		events:  db.Collection(eventsCollection),
		now:     time.Now,
	}
}

// Create inserts a ticket after checking that its event exists; MongoDB has
// no foreign keys.
func (r *mongoTicketRepository) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	doc, ok := newTicketDocument(ticket)
	if !ok {
		return models.Ticket{}, ErrEventNotFound
	}
	if err := r.ensureEvent(ctx, doc.EventID); err != nil {
		return models.Ticket{}, err
	}

	doc.ID = primitive.NewObjectID()
	now := r.now().UTC().Truncate(time.Millisecond)
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.tickets.InsertOne(ctx, doc); err != nil {
		log.Err(err).Str("func", "*mongoTicketRepository.Create").Msg("error inserting ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return doc.toModel(), nil
}

func (r *mongoTicketRepository) FindByID(ctx context.Context, id string) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	oid, ok := objectID(id)
	if !ok {
		return models.Ticket{}, ErrTicketNotFound
	}

	var doc ticketDocument
	if err := r.tickets.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Ticket{}, ErrTicketNotFound
		}
		log.Err(err).Str("func", "*mongoTicketRepository.FindByID").Msg("error finding ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return doc.toModel(), nil
}

func (r *mongoTicketRepository) List(ctx context.Context) ([]models.Ticket, error) {
	return r.list(ctx, "*mongoTicketRepository.List", bson.M{})
}

func (r *mongoTicketRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	oid, ok := objectID(eventID)
	if !ok {
		return []models.Ticket{}, nil
	}
	return r.list(ctx, "*mongoTicketRepository.ListByEvent", bson.M{"eventId": oid})
}

func (r *mongoTicketRepository) Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	oid, ok := objectID(ticket.ID)
	if !ok {
		return models.Ticket{}, ErrTicketNotFound
	}

	doc, ok := newTicketDocument(ticket)
	if !ok {
		return models.Ticket{}, ErrEventNotFound
	}
	if err := r.ensureEvent(ctx, doc.EventID); err != nil {
		return models.Ticket{}, err
	}
	doc.ID = oid
	doc.UpdatedAt = r.now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var replaced ticketDocument
	if err := r.tickets.FindOneAndReplace(ctx, bson.M{"_id": oid}, doc, opts).Decode(&replaced); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Ticket{}, ErrTicketNotFound
		}
		log.Err(err).Str("func", "*mongoTicketRepository.Update").Msg("error replacing ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return replaced.toModel(), nil
}

func (r *mongoTicketRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	oid, ok := objectID(id)
	if !ok {
		return ErrTicketNotFound
	}

	res, err := r.tickets.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Err(err).Str("func", "*mongoTicketRepository.Delete").Msg("error deleting ticket")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return ErrTicketNotFound
	}

	return nil
}

func (r *mongoTicketRepository) ensureEvent(ctx context.Context, eventID primitive.ObjectID) error {
	n, err := r.events.CountDocuments(ctx, bson.M{"_id": eventID}, options.Count().SetLimit(1))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoTicketRepository.ensureEvent").Msg("error counting events")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *mongoTicketRepository) list(ctx context.Context, fn string, filter bson.M) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.tickets.Find(ctx, filter, opts)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error finding tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var docs []ticketDocument
	if err = cursor.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", fn).Msg("error decoding tickets")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	tickets := make([]models.Ticket, 0, len(docs))
	for _, doc := range docs {
		tickets = append(tickets, doc.toModel())
	}

	return tickets, nil
}
