package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/validators"
	"github.com/MKhiriev/evently/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenAuth accepts "Bearer good" as user u-1 and rejects anything else.
func tokenAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, token string) (models.Token, error) {
			if token == "good" {
				return models.Token{UserID: "u-1"}, nil
			}
			return models.Token{}, service.ErrInvalidToken
		},
	}
}

func newEventRouter(t *testing.T, events *mockEventService) http.Handler {
	t.Helper()
	return newHandlerWith(t, &service.Services{AuthService: tokenAuth(), EventService: events}).Init()
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// ─────────────────────────────────────────────
// create
// ─────────────────────────────────────────────

func TestCreateEvent(t *testing.T) {
	events := &mockEventService{
		createFn: func(_ context.Context, e models.Event) (models.Event, error) {
			if e.EventName == "" {
				return models.Event{}, invalid(validators.ErrEventFieldsRequired)
			}
			e.ID = "e-1"
			return e, nil
		},
	}
	router := newEventRouter(t, events)

	t.Run("creator taken from token", func(t *testing.T) {
		body := `{"eventName":"Lagos Tech Fest","createdBy":"someone-else"}`
		rec := serve(router, withBearer(newRequest(http.MethodPost, "/api/events/create", body), "good"))

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody[models.EventResponse](t, rec)
		assert.Equal(t, app.MsgEventCreated, resp.Message)
		assert.Equal(t, "e-1", resp.Event.ID)
		assert.Equal(t, "u-1", resp.Event.CreatedBy)
	})

	t.Run("validation", func(t *testing.T) {
		rec := serve(router, withBearer(newRequest(http.MethodPost, "/api/events/create", `{}`), "good"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, app.MsgEventFieldsRequired, messageOf(t, rec))
	})

	t.Run("no token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/events/create", `{"eventName":"x"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgNoTokenProvided, messageOf(t, rec))
	})

	t.Run("bad token", func(t *testing.T) {
		rec := serve(router, withBearer(newRequest(http.MethodPost, "/api/events/create", `{}`), "forged"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgInvalidToken, messageOf(t, rec))
	})
}

// ─────────────────────────────────────────────
// read
// ─────────────────────────────────────────────

func TestListEvents_EmptyIsArray(t *testing.T) {
	events := &mockEventService{
		listFn: func(context.Context) ([]models.Event, error) { return nil, nil },
		listByUserFn: func(_ context.Context, userID string) ([]models.Event, error) {
			assert.Equal(t, "u-7", userID)
			return []models.Event{{ID: "e-1", CreatedBy: "u-7"}}, nil
		},
	}
	router := newEventRouter(t, events)

	rec := doJSON(t, router, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/events/user/u-7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Event](t, rec), 1)
}

func TestGetEvent(t *testing.T) {
	events := &mockEventService{
		getFn: func(_ context.Context, id string) (models.Event, error) {
			if id == "e-1" {
				return models.Event{ID: "e-1", EventName: "Fest"}, nil
			}
			return models.Event{}, service.ErrEventNotFound
		},
	}
	router := newEventRouter(t, events)

	rec := doJSON(t, router, http.MethodGet, "/api/events/e-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fest", decodeBody[models.Event](t, rec).EventName)

	rec = doJSON(t, router, http.MethodGet, "/api/events/e-2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgEventNotFound, messageOf(t, rec))
}

// ─────────────────────────────────────────────
// update / delete
// ─────────────────────────────────────────────

func TestUpdateEvent_ForwardsRawPatch(t *testing.T) {
	events := &mockEventService{
		updateFn: func(_ context.Context, id string, patch json.RawMessage) (models.Event, error) {
			assert.Equal(t, "e-1", id)
			assert.JSONEq(t, `{"eventName":"Renamed"}`, string(patch))
			return models.Event{ID: id, EventName: "Renamed"}, nil
		},
	}

	rec := doJSON(t, newEventRouter(t, events), http.MethodPut, "/api/events/e-1", `{"eventName":"Renamed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.EventResponse](t, rec)
	assert.Equal(t, app.MsgEventUpdated, resp.Message)
	assert.Equal(t, "Renamed", resp.Event.EventName)
}

func TestDeleteEvent(t *testing.T) {
	events := &mockEventService{
		deleteFn: func(_ context.Context, id string) error {
			if id == "e-1" {
				return nil
			}
			return service.ErrEventNotFound
		},
	}
	router := newEventRouter(t, events)

	rec := doJSON(t, router, http.MethodDelete, "/api/events/e-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgEventDeleted, messageOf(t, rec))

	rec = doJSON(t, router, http.MethodDelete, "/api/events/e-2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// image upload
// ─────────────────────────────────────────────

func multipartImage(t *testing.T, field, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="cover.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadEventImage(t *testing.T) {
	events := &mockEventService{
		uploadFn: func(_ context.Context, id, userID string, image models.ImageUpload) (models.Event, error) {
			assert.Equal(t, "e-1", id)
			assert.Equal(t, "u-1", userID)
			assert.Equal(t, "cover.png", image.Filename)
			assert.Equal(t, "image/png", image.ContentType)
			assert.EqualValues(t, 4, image.Size)

			data, err := io.ReadAll(image.Body)
			require.NoError(t, err)
			assert.Equal(t, []byte("\x89PNG"), data)

			return models.Event{ID: id, EventImage: "https://cdn.example/events/e-1/x.png"}, nil
		},
	}
	router := newEventRouter(t, events)

	body, ct := multipartImage(t, "image", "image/png", []byte("\x89PNG"))
	req := withBearer(newRequest(http.MethodPost, "/api/events/e-1/image", ""), "good")
	req.Body = io.NopCloser(body)
	req.Header.Set("Content-Type", ct)

	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.EventResponse](t, rec)
	assert.Equal(t, app.MsgImageUploaded, resp.Message)
	assert.Equal(t, "https://cdn.example/events/e-1/x.png", resp.Event.EventImage)
}

func TestUploadEventImage_Rejections(t *testing.T) {
	events := &mockEventService{
		uploadFn: func(_ context.Context, _, _ string, image models.ImageUpload) (models.Event, error) {
			if image.ContentType != "image/png" {
				return models.Event{}, invalid(service.ErrInvalidImageType)
			}
			return models.Event{}, service.ErrForbidden
		},
	}
	router := newEventRouter(t, events)

	tests := []struct {
		name        string
		field       string
		contentType string
		wantStatus  int
		wantMsg     string
	}{
		{"missing image field", "file", "image/png", http.StatusBadRequest, app.MsgImageRequired},
		{"unsupported type", "image", "application/pdf", http.StatusBadRequest, app.MsgInvalidImageType},
		{"not the owner", "image", "image/png", http.StatusForbidden, app.MsgForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartImage(t, tt.field, tt.contentType, []byte("data"))
			req := withBearer(newRequest(http.MethodPost, "/api/events/e-1/image", ""), "good")
			req.Body = io.NopCloser(body)
			req.Header.Set("Content-Type", ct)

			rec := serve(router, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, messageOf(t, rec))
		})
	}
}
