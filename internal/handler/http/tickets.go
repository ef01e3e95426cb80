package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
)

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	var ticket models.Ticket
	if !h.readBody(w, r, &ticket) {
		return
	}
	if ticket.EventID == "" {
		h.writeError(w, r, ErrEventIDRequired)
		return
	}

	created, err := h.services.TicketService.CreateTicket(r.Context(), ticket)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.TicketResponse{Message: app.MsgTicketCreated, Ticket: created}, http.StatusCreated)
}

func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.services.TicketService.ListTickets(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, nonNil(tickets), http.StatusOK)
}

func (h *Handler) listEventTickets(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if eventID == "" {
		h.writeError(w, r, ErrEventIDRequired)
		return
	}

	tickets, err := h.services.TicketService.ListEventTickets(r.Context(), eventID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, nonNil(tickets), http.StatusOK)
}

func (h *Handler) getTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.services.TicketService.GetTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, ticket, http.StatusOK)
}

func (h *Handler) updateTicket(w http.ResponseWriter, r *http.Request) {
	var patch json.RawMessage
	if !h.readBody(w, r, &patch) {
		return
	}

	ticket, err := h.services.TicketService.UpdateTicket(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.TicketResponse{Message: app.MsgTicketUpdated, Ticket: ticket}, http.StatusOK)
}

func (h *Handler) deleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := h.services.TicketService.DeleteTicket(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgTicketDeleted, http.StatusOK)
}
