package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-whatsapp/backend/pkg/utils"
)

// LivenessText is returned by GET /.
const LivenessText = "Bot de WhatsApp activo 🚀"

// SessionCounter reports how many senders are known.
type SessionCounter interface {
	Len() int
}

// Handler serves liveness and status probes.
type Handler struct {
	sessions SessionCounter
	timeZone string
}

// New creates the health handler.
func New(sessions SessionCounter, timeZone string) *Handler {
	return &Handler{
		sessions: sessions,
		timeZone: timeZone,
	}
}

// RegisterRoutes mounts GET / and GET /status.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleLiveness)
	r.Get("/status", h.handleStatus)
}

func (h *Handler) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	utils.RespondText(w, http.StatusOK, LivenessText)
}

type statusResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	TimeZone string `json:"timeZone"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, statusResponse{
		Status:   "ok",
		Sessions: h.sessions.Len(),
		TimeZone: h.timeZone,
	})
}
