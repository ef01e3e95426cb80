package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
)

// maxImageSize caps multipart uploads to POST /api/events/{id}/image.
const maxImageSize = 5 << 20

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrUnauthorized)
		return
	}

	var event models.Event
	if !h.readBody(w, r, &event) {
		return
	}
	event.CreatedBy = userID

	created, err := h.services.EventService.CreateEvent(r.Context(), event)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.EventResponse{Message: app.MsgEventCreated, Event: created}, http.StatusCreated)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.services.EventService.ListEvents(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, nonNil(events), http.StatusOK)
}

func (h *Handler) listUserEvents(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		h.writeError(w, r, ErrUserIDRequired)
		return
	}

	events, err := h.services.EventService.ListUserEvents(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, nonNil(events), http.StatusOK)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, r, ErrEventIDRequired)
		return
	}

	event, err := h.services.EventService.GetEvent(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, event, http.StatusOK)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, r, ErrEventIDRequired)
		return
	}

	var patch json.RawMessage
	if !h.readBody(w, r, &patch) {
		return
	}

	event, err := h.services.EventService.UpdateEvent(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.EventResponse{Message: app.MsgEventUpdated, Event: event}, http.StatusOK)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, r, ErrEventIDRequired)
		return
	}

	if err := h.services.EventService.DeleteEvent(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgEventDeleted, http.StatusOK)
}

// uploadEventImage accepts a multipart form with the picture in the "image"
// field and stores it as the event's cover.
func (h *Handler) uploadEventImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, r, ErrEventIDRequired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			log.Debug().Err(err).Msg("unreadable multipart form")
		}
		h.writeError(w, r, ErrImageRequired)
		return
	}
	defer file.Close()

	event, err := h.services.EventService.UploadEventImage(r.Context(), id, userID, models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.EventResponse{Message: app.MsgImageUploaded, Event: event}, http.StatusOK)
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
