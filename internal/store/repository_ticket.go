package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// ticketRepository is the PostgreSQL-backed implementation of [TicketRepository].
type ticketRepository struct {
	*DB
	ids *utils.UUIDGenerator
}

func NewTicketRepository(db *DB) TicketRepository {
	db.logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		DB:  db,
		ids: utils.NewUUIDGenerator(),
	}
}

// Create inserts a ticket. A ticket referencing a missing event fails with
// [ErrEventNotFound].
func (r *ticketRepository) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	values, err := ticketValues(ticket)
	if err != nil {
		return models.Ticket{}, err
	}
	values["id"] = r.ids.Generate()

	query, args, err := psql.Insert(ticketsTable).
		SetMap(values).
		Suffix(returning(ticketColumns)).
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanTicket(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return models.Ticket{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.Create").Msg("error inserting ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id string) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectFrom(ticketsTable, ticketColumns).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ticket, err := scanTicket(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return models.Ticket{}, ErrTicketNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.FindByID").Msg("error selecting ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]models.Ticket, error) {
	return r.list(ctx, "*ticketRepository.List", nil)
}

func (r *ticketRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	return r.list(ctx, "*ticketRepository.ListByEvent", sq.Eq{"event_id": eventID})
}

func (r *ticketRepository) Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	values, err := ticketValues(ticket)
	if err != nil {
		return models.Ticket{}, err
	}

	query, args, err := psql.Update(ticketsTable).
		SetMap(values).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": ticket.ID}).
		Suffix(returning(ticketColumns)).
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanTicket(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return models.Ticket{}, ErrTicketNotFound
		}
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Ticket{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.Update").Msg("error updating ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, ticketsTable, id, ErrTicketNotFound, "*ticketRepository.Delete")
}

func (r *ticketRepository) list(ctx context.Context, fn string, where sq.Sqlizer) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	builder := selectFrom(ticketsTable, ticketColumns).OrderBy("created_at", "id")
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
			return []models.Ticket{}, nil
		}
		log.Err(err).Str("func", fn).Msg("error selecting tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning ticket row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tickets = append(tickets, ticket)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating ticket rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tickets, nil
}
