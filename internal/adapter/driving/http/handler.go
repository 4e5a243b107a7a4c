package http

import (
	"net/http"

	"github.com/Wyydra/dial/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	Relay *service.Relay
}

func NewHandler(relay *service.Relay) *Handler {
	return &Handler{
		Relay: relay,
	}
}

// NewRouter serves the browser client assets from staticDir and the
// signaling websocket on /ws.
func (h *Handler) NewRouter(staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	fs := http.FileServer(http.Dir(staticDir))
	r.Handle("/*", fs)

	r.Get("/ws", h.ServeWS)

	return r
}
