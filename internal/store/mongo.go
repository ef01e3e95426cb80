package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection   = "users"
	eventsCollection  = "events"
	ticketsCollection = "tickets"

	usersEmailIndex    = "email_1"
	usersUsernameIndex = "username_1"

	mongoServerSelectionTimeout = 5 * time.Second
)

// MongoDB is a MongoDB database handle shared by all Mongo repositories.
type MongoDB struct {
	client *mongo.Client
	*mongo.Database
	logger *logger.Logger
}

// NewConnectMongo connects to cfg.URI, pings the primary with the same
// backoff as [NewConnectPostgres] and ensures the collection indexes.
func NewConnectMongo(ctx context.Context, cfg config.Mongo, log *logger.Logger) (*MongoDB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(mongoServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occurred during mongo connection")
		return nil, fmt.Errorf("error occurred during mongo connection: %w", err)
	}

	backoff := retry.WithMaxRetries(connectRetries, retry.NewExponential(connectBaseBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingErr := client.Ping(ctx, readpref.Primary())
		if pingErr == nil {
			return nil
		}
		if errors.Is(pingErr, context.Canceled) {
			return pingErr
		}
		log.Warn().Err(pingErr).Str("func", "NewConnectMongo").Msg("mongo is not ready, retrying")
		return retry.RetryableError(pingErr)
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting mongo (ping)")
		return nil, fmt.Errorf("error connecting mongo: %w", err)
	}

	db := &MongoDB{
		client:   client,
		Database: client.Database(cfg.Database),
		logger:   log,
	}
	if err = db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Database).Msg("connected to mongo successfully")

	return db, nil
}

func (db *MongoDB) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usersEmailIndex)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usersUsernameIndex)},
			{Keys: bson.D{{Key: "emailVerificationToken", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		eventsCollection: {
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		},
		ticketsCollection: {
			{Keys: bson.D{{Key: "eventId", Value: 1}}},
		},
	}

	for collection, idx := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, idx); err != nil {
			db.logger.Err(err).Str("func", "*MongoDB.ensureIndexes").Str("collection", collection).Msg("error creating indexes")
			return fmt.Errorf("error creating %s indexes: %w", collection, err)
		}
	}

	return nil
}

// Ping implements [Pinger].
func (db *MongoDB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (db *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoServerSelectionTimeout)
	defer cancel()
	return db.client.Disconnect(ctx)
}

// objectID parses a hex id. Ids that are not ObjectIDs cannot match any
// document, so callers map the error to their not-found sentinel.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// mongoDuplicateError maps a duplicate-key error on the users collection to
// the field it concerns, or returns nil.
func mongoDuplicateError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if strings.Contains(err.Error(), usersUsernameIndex) {
		return ErrUsernameAlreadyExists
	}
	return ErrEmailAlreadyExists
}
