package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/evently/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketRow(id, eventID string, price any, available any) []driver.Value {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bank, number, name := "", "", ""
	if price != nil {
		bank, number, name = "First Bank", "0123456789", "Fest Ltd"
	}
	return []driver.Value{
		id, eventID, "VIP", "paid", "limited", available, int64(2), price,
		bank, number, name, "Front row", "Best seats",
		[]byte(`{"twitter":"@fest"}`), now, now,
	}
}

func TestTicketRepository_Create(t *testing.T) {
	ctx := context.Background()
	available := 50
	ticket := models.Ticket{
		EventID:       testEvent().ID,
		TicketName:    "VIP",
		Pricing:       models.NewTicketPricing(models.TicketPaid, &models.Payout{Price: 25.5, Bank: "First Bank", AccountNumber: "0123456789", AccountName: "Fest Ltd"}),
		Stock:         models.NewTicketStock(models.StockLimited, &available),
		PurchaseLimit: 2,
		Socials:       models.Socials{Twitter: "@fest"},
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTicketRepository(db)

		// account_name, account_number, available_tickets, bank, benefits, event_id, id, ...
		mock.ExpectQuery(`INSERT INTO tickets \(account_name,account_number,available_tickets,bank,`).
			WithArgs(
				"Fest Ltd", "0123456789", int64(50), "First Bank", "", testEvent().ID, sqlmock.AnyArg(),
				int64(2), []byte(`{"twitter":"@fest"}`), "", "VIP", 25.5, "limited", "paid",
			).
			WillReturnRows(sqlmock.NewRows(ticketColumns).AddRow(ticketRow("t-1", testEvent().ID, 25.5, int64(50))...))

		created, err := repo.Create(ctx, ticket)
		require.NoError(t, err)
		assert.Equal(t, "t-1", created.ID)
		require.NotNil(t, created.Pricing.Payout)
		assert.Equal(t, 25.5, created.Pricing.Payout.Price)
		require.NotNil(t, created.Stock.Available)
		assert.Equal(t, 50, *created.Stock.Available)
		assert.Equal(t, "@fest", created.Socials.Twitter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing event", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectQuery("INSERT INTO tickets").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		_, err := repo.Create(ctx, ticket)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestTicketRepository_ListByEvent(t *testing.T) {
	ctx := context.Background()
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db)

	rows := sqlmock.NewRows(ticketColumns).
		AddRow(ticketRow("t-1", "e-1", 25.5, int64(10))...).
		AddRow(ticketRow("t-2", "e-1", nil, nil)...)
	mock.ExpectQuery(`SELECT id, event_id, .* FROM tickets WHERE event_id = \$1 ORDER BY created_at, id`).
		WithArgs("e-1").
		WillReturnRows(rows)

	tickets, err := repo.ListByEvent(ctx, "e-1")
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	// a row without a price loses its payout, the stock type still says limited
	assert.NotNil(t, tickets[0].Pricing.Payout)
	assert.Nil(t, tickets[1].Pricing.Payout)
	assert.Nil(t, tickets[1].Stock.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_NotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("find", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTicketRepository(db)
		mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows(ticketColumns))

		_, err := repo.FindByID(ctx, "t-404")
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("update", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTicketRepository(db)
		mock.ExpectQuery("UPDATE tickets").WillReturnRows(sqlmock.NewRows(ticketColumns))

		_, err := repo.Update(ctx, models.Ticket{ID: "t-404", EventID: "e-1"})
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTicketRepository(db)
		mock.ExpectExec(`DELETE FROM tickets WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "t-404")
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}
