package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and updates against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions. Secret columns
// are never logged.
type userRepository struct {
	*DB
	ids *utils.UUIDGenerator
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection.
func NewUserRepository(db *DB) UserRepository {
	db.logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:  db,
		ids: utils.NewUUIDGenerator(),
	}
}

// Create persists a new account and returns the canonical database
// representation via a RETURNING clause.
//
// Error handling:
//   - unique_violation on users_email_key → [ErrEmailAlreadyExists].
//   - unique_violation on users_username_key → [ErrUsernameAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	values := userValues(user)
	values["id"] = r.ids.Generate()

	query, args, err := psql.Insert(usersTable).
		SetMap(values).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")
		if dupErr := userDuplicateError(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByID", sq.Eq{"id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByEmail", sq.Eq{"email": models.NormalizeEmail(email)})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByUsername", sq.Eq{"username": username})
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, token string, now time.Time) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByVerificationToken", sq.And{
		sq.Eq{"email_verification_token": token},
		sq.Gt{"email_verification_expires": now},
	})
}

// Update writes every mutable column of the account and bumps updated_at.
// Returns [ErrUserNotFound] when no row has user.ID.
func (r *userRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Update(usersTable).
		SetMap(userValues(user)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID}).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.Update").Msg("error updating user")
		if dupErr := userDuplicateError(err); dupErr != nil {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// ClearExpiredSecrets clears expired reset OTP pairs and expired verification
// tokens in one transaction.
func (r *userRepository) ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	statements := []sq.UpdateBuilder{
		psql.Update(usersTable).
			Set("reset_password_otp", nil).
			Set("reset_password_expires", nil).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Lt{"reset_password_expires": now}),
		psql.Update(usersTable).
			Set("email_verification_token", nil).
			Set("email_verification_expires", nil).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Lt{"email_verification_expires": now}),
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredSecrets").Msg("error beginning transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	var cleared int64
	for _, stmt := range statements {
		query, args, err := stmt.ToSql()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ClearExpiredSecrets").Msg("error clearing expired secrets")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		cleared += n
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredSecrets").Msg("error committing transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return cleared, nil
}

func (r *userRepository) findOne(ctx context.Context, fn string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectFrom(usersTable, userColumns).Where(where).Limit(1).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", fn).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// userDuplicateError maps a unique violation to the field it concerns, or
// returns nil when err is not a unique violation.
func userDuplicateError(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return nil
	}

	if postgresConstraint(err) == usersUsernameConstraint {
		return ErrUsernameAlreadyExists
	}
	return ErrEmailAlreadyExists
}
