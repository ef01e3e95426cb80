package http

import (
	"net/http"

	"github.com/MKhiriev/evently/internal/app"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(serverVersion))
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, app.MsgAPIRunning, http.StatusOK)
}
