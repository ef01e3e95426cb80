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

// mongoUserRepository is the MongoDB-backed implementation of [UserRepository].
// Uniqueness of email and username is enforced by the indexes created in
// [NewConnectMongo].
type mongoUserRepository struct {
	users *mongo.Collection
	now   func() time.Time
}

func NewMongoUserRepository(db *MongoDB) UserRepository {
	db.logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{
		users: db.Collection(usersCollection),
		now:   time.Now,
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	doc := newUserDocument(user)
	doc.ID = primitive.NewObjectID()
	now := r.now().UTC().Truncate(time.Millisecond)
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.Create").Msg("error inserting user")
		if dupErr := mongoDuplicateError(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return doc.toModel(), nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return r.findOne(ctx, "*mongoUserRepository.FindByID", bson.M{"_id": oid})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*mongoUserRepository.FindByEmail", bson.M{"email": models.NormalizeEmail(email)})
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*mongoUserRepository.FindByUsername", bson.M{"username": username})
}

func (r *mongoUserRepository) FindByVerificationToken(ctx context.Context, token string, now time.Time) (models.User, error) {
	return r.findOne(ctx, "*mongoUserRepository.FindByVerificationToken", bson.M{
		"emailVerificationToken":   token,
		"emailVerificationExpires": bson.M{"$gt": now},
	})
}

// Update replaces the whole document so that cleared secrets disappear
// together with their expiry.
func (r *mongoUserRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	oid, ok := objectID(user.ID)
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	doc := newUserDocument(user)
	doc.ID = oid
	doc.UpdatedAt = r.now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var replaced userDocument
	err := r.users.FindOneAndReplace(ctx, bson.M{"_id": oid}, doc, opts).Decode(&replaced)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*mongoUserRepository.Update").Msg("error replacing user")
		if dupErr := mongoDuplicateError(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return replaced.toModel(), nil
}

func (r *mongoUserRepository) ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	sweeps := []struct {
		filter bson.M
		unset  bson.M
	}{
		{
			filter: bson.M{"resetPasswordExpires": bson.M{"$lt": now}},
			unset:  bson.M{"resetPasswordOTP": "", "resetPasswordExpires": ""},
		},
		{
			filter: bson.M{"emailVerificationExpires": bson.M{"$lt": now}},
			unset:  bson.M{"emailVerificationToken": "", "emailVerificationExpires": ""},
		},
	}

	var cleared int64
	for _, sweep := range sweeps {
		update := bson.M{
			"$unset": sweep.unset,
			"$set":   bson.M{"updatedAt": r.now().UTC()},
		}
		res, err := r.users.UpdateMany(ctx, sweep.filter, update)
		if err != nil {
			log.Err(err).Str("func", "*mongoUserRepository.ClearExpiredSecrets").Msg("error clearing expired secrets")
			return cleared, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		cleared += res.ModifiedCount
	}

	return cleared, nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, fn string, filter bson.M) (models.User, error) {
	log := logger.FromContext(ctx)

	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", fn).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return doc.toModel(), nil
}
