package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// eventRepository is the PostgreSQL-backed implementation of [EventRepository].
type eventRepository struct {
	*DB
	ids *utils.UUIDGenerator
}

func NewEventRepository(db *DB) EventRepository {
	db.logger.Debug().Msg("creating event repository")
	return &eventRepository{
		DB:  db,
		ids: utils.NewUUIDGenerator(),
	}
}

func (r *eventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	values := eventValues(event)
	values["id"] = r.ids.Generate()

	query, args, err := psql.Insert(eventsTable).
		SetMap(values).
		Suffix(returning(eventColumns)).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanEvent(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Create").Msg("error inserting event")
		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return models.Event{}, ErrUserNotFound
		}
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectFrom(eventsTable, eventColumns).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	event, err := scanEvent(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*eventRepository.FindByID").Msg("error selecting event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	return r.list(ctx, "*eventRepository.List", nil)
}

func (r *eventRepository) ListByCreator(ctx context.Context, userID string) ([]models.Event, error) {
	return r.list(ctx, "*eventRepository.ListByCreator", sq.Eq{"created_by": userID})
}

func (r *eventRepository) Update(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	values := eventValues(event)
	// the creator of an event never changes
	delete(values, "created_by")

	query, args, err := psql.Update(eventsTable).
		SetMap(values).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": event.ID}).
		Suffix(returning(eventColumns)).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanEvent(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*eventRepository.Update").Msg("error updating event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// Delete removes the event; its tickets are removed by the foreign key
// cascade.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, eventsTable, id, ErrEventNotFound, "*eventRepository.Delete")
}

func (r *eventRepository) list(ctx context.Context, fn string, where sq.Sqlizer) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	builder := selectFrom(eventsTable, eventColumns).OrderBy("start_date", "id")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return []models.Event{}, nil
		}
		log.Err(err).Str("func", fn).Msg("error selecting events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating event rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}

// isNoRow reports whether err means that no row matched. Malformed UUIDs
// cannot match any row.
func isNoRow(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || postgresError(err) == pgerrcode.InvalidTextRepresentation
}

// deleteByID deletes the row of table with id, returning notFound when no row
// was affected.
func deleteByID(ctx context.Context, db *DB, table, id string, notFound error, fn string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return notFound
		}
		log.Err(err).Str("func", fn).Msg("error deleting row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return notFound
	}

	return nil
}
