package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/mock"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/MKhiriev/evently/internal/validators"
	"github.com/MKhiriev/evently/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testEvent() models.Event {
	start := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	return models.Event{
		ID:          "e-1",
		EventName:   "Lagos Tech Fest",
		Category:    "Tech",
		Description: "Talks and workshops",
		StartDate:   start,
		EndDate:     start.Add(24 * time.Hour),
		StartTime:   "09:00",
		EndTime:     "18:00",
		Location:    models.NewEventLocation(models.LocationOnline, nil, "https://meet.example/fest"),
		CreatedBy:   "u-1",
		CreatedAt:   testNow,
	}
}

func newTestEventSvc(t *testing.T) (EventService, *mock.MockEventRepository, *mock.MockImageStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	events := mock.NewMockEventRepository(ctrl)
	images := mock.NewMockImageStorage(ctrl)
	return NewEventService(events, images, logger.Nop()), events, images
}

func TestEventService_CreateEvent(t *testing.T) {
	svc, events, _ := newTestEventSvc(t)
	ctx := context.Background()

	in := testEvent()
	events.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.Event) (models.Event, error) {
			assert.Empty(t, e.ID)
			e.ID = "e-2"
			return e, nil
		},
	)

	created, err := svc.CreateEvent(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "e-2", created.ID)
}

func TestEventService_CreateEvent_Invalid(t *testing.T) {
	svc, _, _ := newTestEventSvc(t)

	in := testEvent()
	in.Location = models.NewEventLocation(models.LocationPhysical, nil, "")

	_, err := svc.CreateEvent(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrVenueRequired)
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	svc, events, _ := newTestEventSvc(t)
	ctx := context.Background()

	events.EXPECT().FindByID(ctx, "missing").Return(models.Event{}, store.ErrEventNotFound)

	_, err := svc.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_Lists(t *testing.T) {
	svc, events, _ := newTestEventSvc(t)
	ctx := context.Background()

	events.EXPECT().List(ctx).Return([]models.Event{testEvent()}, nil)
	events.EXPECT().ListByCreator(ctx, "u-1").Return(nil, errors.New("timeout"))

	all, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ListUserEvents(ctx, "u-1")
	assertInternal(t, err)
}

func TestEventService_UpdateEvent_MergesPatch(t *testing.T) {
	svc, events, _ := newTestEventSvc(t)
	ctx := context.Background()

	events.EXPECT().FindByID(ctx, "e-1").Return(testEvent(), nil)
	events.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.Event) (models.Event, error) {
			assert.Equal(t, "e-1", e.ID)
			assert.Equal(t, "u-1", e.CreatedBy)
			assert.Equal(t, "Lagos Tech Fest 2026", e.EventName)
			assert.Equal(t, "Tech", e.Category)
			return e, nil
		},
	)

	patch := json.RawMessage(`{"id":"hijack","eventName":"Lagos Tech Fest 2026","createdBy":"u-2"}`)
	updated, err := svc.UpdateEvent(ctx, "e-1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Lagos Tech Fest 2026", updated.EventName)
}

func TestEventService_UpdateEvent_BadPatch(t *testing.T) {
	svc, events, _ := newTestEventSvc(t)
	ctx := context.Background()

	events.EXPECT().FindByID(ctx, "e-1").Return(testEvent(), nil).Times(2)

	_, err := svc.UpdateEvent(ctx, "e-1", json.RawMessage(`{"eventName":`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateEvent(ctx, "e-1", json.RawMessage(`{"eventName":"  "}`))
	assert.ErrorIs(t, err, validators.ErrEventFieldsRequired)
}

func TestEventService_DeleteEvent(t *testing.T) {
	svc, events, _ := newTestEventSvc(t)
	ctx := context.Background()

	events.EXPECT().Delete(ctx, "e-1").Return(nil)
	events.EXPECT().Delete(ctx, "e-1").Return(store.ErrEventNotFound)

	require.NoError(t, svc.DeleteEvent(ctx, "e-1"))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, "e-1"), ErrEventNotFound)
}

func TestEventService_UploadEventImage(t *testing.T) {
	svc, events, images := newTestEventSvc(t)
	ctx := context.Background()

	events.EXPECT().FindByID(ctx, "e-1").Return(testEvent(), nil)
	images.EXPECT().Upload(ctx, gomock.Any(), "image/png", int64(3), gomock.Any()).DoAndReturn(
		func(_ context.Context, key, _ string, _ int64, _ io.Reader) (string, error) {
			assert.True(t, strings.HasPrefix(key, "events/e-1/"))
			assert.True(t, strings.HasSuffix(key, ".png"))
			return "https://cdn.example/" + key, nil
		},
	)
	events.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.Event) (models.Event, error) { return e, nil },
	)

	updated, err := svc.UploadEventImage(ctx, "e-1", "u-1", models.ImageUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Size:        3,
		Body:        strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.EventImage, "https://cdn.example/events/e-1/"))
}

func TestEventService_UploadEventImage_Rejections(t *testing.T) {
	t.Run("wrong type", func(t *testing.T) {
		svc, _, _ := newTestEventSvc(t)

		_, err := svc.UploadEventImage(context.Background(), "e-1", "u-1", models.ImageUpload{ContentType: "application/pdf"})
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrInvalidImageType)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc, events, _ := newTestEventSvc(t)
		ctx := context.Background()

		events.EXPECT().FindByID(ctx, "e-1").Return(testEvent(), nil)

		_, err := svc.UploadEventImage(ctx, "e-1", "u-2", models.ImageUpload{ContentType: "image/jpeg"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("storage disabled", func(t *testing.T) {
		svc, events, images := newTestEventSvc(t)
		ctx := context.Background()

		events.EXPECT().FindByID(ctx, "e-1").Return(testEvent(), nil)
		images.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", store.ErrImageStorageDisabled)

		_, err := svc.UploadEventImage(ctx, "e-1", "u-1", models.ImageUpload{ContentType: "image/webp"})
		assert.ErrorIs(t, err, ErrImageUploadDisabled)
	})
}
