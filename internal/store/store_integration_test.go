// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/models"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Integration Suite")
}

// backend is a running record store together with its teardown.
type backend struct {
	storages  *store.Storages
	container testcontainers.Container
}

func (b *backend) cleanup(ctx context.Context) {
	if b.storages != nil {
		_ = b.storages.Close()
	}
	if b.container != nil {
		_ = b.container.Terminate(ctx)
	}
}

func startPostgres(ctx context.Context) (*backend, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("evently_test"),
		postgres.WithUsername("evently"),
		postgres.WithPassword("evently"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}
	b := &backend{container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		b.cleanup(ctx)
		return nil, err
	}

	b.storages, err = store.NewStorages(ctx, config.Storage{
		Driver: config.DriverPostgres,
		DB:     config.DB{DSN: dsn},
	}, logger.Nop())
	if err != nil {
		b.cleanup(ctx)
		return nil, err
	}

	return b, nil
}

func startMongo(ctx context.Context) (*backend, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}
	b := &backend{container: container}

	uri, err := container.Endpoint(ctx, "mongodb")
	if err != nil {
		b.cleanup(ctx)
		return nil, err
	}

	b.storages, err = store.NewStorages(ctx, config.Storage{
		Driver: config.DriverMongo,
		Mongo:  config.Mongo{URI: uri, Database: "evently_test"},
	}, logger.Nop())
	if err != nil {
		b.cleanup(ctx)
		return nil, err
	}

	return b, nil
}

var _ = Describe("Postgres storages", Ordered, func() {
	var b *backend

	BeforeAll(func(ctx SpecContext) {
		var err error
		b, err = startPostgres(ctx)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterAll(func() {
		if b != nil {
			b.cleanup(context.Background())
		}
	})

	repositoryBehaviour(func() *store.Storages { return b.storages }, "00000000-0000-7000-8000-000000000000")
})

var _ = Describe("Mongo storages", Ordered, func() {
	var b *backend

	BeforeAll(func(ctx SpecContext) {
		var err error
		b, err = startMongo(ctx)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterAll(func() {
		if b != nil {
			b.cleanup(context.Background())
		}
	})

	repositoryBehaviour(func() *store.Storages { return b.storages }, "000000000000000000000000")
})

// repositoryBehaviour holds the assertions both backends must satisfy.
// missingID is a well-formed identifier no record uses.
func repositoryBehaviour(storages func() *store.Storages, missingID string) {
	var (
		ctx   context.Context
		owner models.User
	)

	newUser := func(username, email string) models.User {
		return models.User{
			FirstName:      "Ada",
			LastName:       "Lovelace",
			Username:       username,
			Email:          email,
			PasswordDigest: "$2a$10$abcdefghijklmnopqrstuv",
		}
	}

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		owner, err = storages().UserRepository.Create(ctx, newUser("owner", "owner@example.com"))
		Expect(err).NotTo(HaveOccurred())
		Expect(owner.ID).NotTo(BeEmpty())
	})

	It("answers ping", func() {
		Expect(storages().Ping(ctx)).To(Succeed())
	})

	Describe("users", func() {
		It("finds users by normalized e-mail and by username", func() {
			byEmail, err := storages().UserRepository.FindByEmail(ctx, "  OWNER@Example.com ")
			Expect(err).NotTo(HaveOccurred())
			Expect(byEmail.ID).To(Equal(owner.ID))

			byName, err := storages().UserRepository.FindByUsername(ctx, "owner")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName.Email).To(Equal("owner@example.com"))
		})

		It("rejects duplicates", func() {
			_, err := storages().UserRepository.Create(ctx, newUser("other", "OWNER@example.com"))
			Expect(err).To(MatchError(store.ErrEmailAlreadyExists))

			_, err = storages().UserRepository.Create(ctx, newUser("owner", "other@example.com"))
			Expect(err).To(MatchError(store.ErrUsernameAlreadyExists))
		})

		It("reports missing users", func() {
			_, err := storages().UserRepository.FindByID(ctx, missingID)
			Expect(err).To(MatchError(store.ErrUserNotFound))

			_, err = storages().UserRepository.FindByID(ctx, "not-an-id")
			Expect(err).To(MatchError(store.ErrUserNotFound))
		})

		It("finds verification tokens only until they expire", func() {
			now := time.Now().UTC()

			u, err := storages().UserRepository.Create(ctx, newUser("pending", "pending@example.com"))
			Expect(err).NotTo(HaveOccurred())

			u.SetVerificationToken("deadbeef", now.Add(time.Hour))
			_, err = storages().UserRepository.Update(ctx, u)
			Expect(err).NotTo(HaveOccurred())

			found, err := storages().UserRepository.FindByVerificationToken(ctx, "deadbeef", now)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(u.ID))

			_, err = storages().UserRepository.FindByVerificationToken(ctx, "deadbeef", now.Add(2*time.Hour))
			Expect(err).To(MatchError(store.ErrUserNotFound))
		})

		It("clears expired secrets", func() {
			now := time.Now().UTC()

			u, err := storages().UserRepository.Create(ctx, newUser("expired", "expired@example.com"))
			Expect(err).NotTo(HaveOccurred())

			u.SetResetOTP("123456", now.Add(-time.Minute))
			_, err = storages().UserRepository.Update(ctx, u)
			Expect(err).NotTo(HaveOccurred())

			cleared, err := storages().UserRepository.ClearExpiredSecrets(ctx, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(cleared).To(BeNumerically(">=", 1))

			reloaded, err := storages().UserRepository.FindByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.ResetPasswordOTP).To(BeNil())
			Expect(reloaded.ResetPasswordExpires).To(BeNil())
		})
	})

	Describe("events and tickets", func() {
		var event models.Event

		BeforeEach(func() {
			start := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

			var err error
			event, err = storages().EventRepository.Create(ctx, models.Event{
				EventName: "Lagos Tech Fest",
				Category:  "Tech",
				StartDate: start,
				EndDate:   start.Add(24 * time.Hour),
				StartTime: "09:00",
				EndTime:   "18:00",
				Location:  models.NewEventLocation(models.LocationOnline, nil, "https://meet.example/fest"),
				CreatedBy: owner.ID,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists events by creator", func() {
			events, err := storages().EventRepository.ListByCreator(ctx, owner.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).NotTo(BeEmpty())
			Expect(events[0].Location.URL).To(Equal("https://meet.example/fest"))
		})

		It("rejects tickets for unknown events", func() {
			_, err := storages().TicketRepository.Create(ctx, models.Ticket{
				EventID:    missingID,
				TicketName: "Orphan",
				Pricing:    models.NewTicketPricing(models.TicketFree, nil),
				Stock:      models.NewTicketStock(models.StockUnlimited, nil),
			})
			Expect(err).To(MatchError(store.ErrEventNotFound))
		})

		It("removes tickets together with their event", func() {
			available := 25
			ticket, err := storages().TicketRepository.Create(ctx, models.Ticket{
				EventID:    event.ID,
				TicketName: "Regular",
				Pricing:    models.NewTicketPricing(models.TicketFree, nil),
				Stock:      models.NewTicketStock(models.StockLimited, &available),
				Socials:    models.Socials{Twitter: "@fest"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*ticket.Stock.Available).To(Equal(25))

			tickets, err := storages().TicketRepository.ListByEvent(ctx, event.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(tickets).To(HaveLen(1))
			Expect(tickets[0].Socials.Twitter).To(Equal("@fest"))

			Expect(storages().EventRepository.Delete(ctx, event.ID)).To(Succeed())

			_, err = storages().TicketRepository.FindByID(ctx, ticket.ID)
			Expect(err).To(MatchError(store.ErrTicketNotFound))

			err = storages().EventRepository.Delete(ctx, event.ID)
			Expect(err).To(MatchError(store.ErrEventNotFound))
		})
	})
}
