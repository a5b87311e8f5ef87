package webhook

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-whatsapp/backend/internal/model/message"
	"github.com/zhouzirui/z-whatsapp/backend/internal/service/bot"
	"github.com/zhouzirui/z-whatsapp/backend/pkg/twiml"
	"github.com/zhouzirui/z-whatsapp/backend/pkg/utils"
)

const (
	maxFormBytes = 1 << 20
	maxLogText   = 120
)

// Responder produces the reply for one inbound message.
type Responder interface {
	Respond(ctx context.Context, msg message.Incoming) bot.Reply
}

// Handler serves the messaging provider's inbound webhook.
type Handler struct {
	bot      Responder
	maxMedia int
}

// New creates the webhook handler.
func New(responder Responder, maxMedia int) *Handler {
	return &Handler{
		bot:      responder,
		maxMedia: maxMedia,
	}
}

// RegisterRoutes mounts POST /whatsapp.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/whatsapp", h.handleInbound)
}

// handleInbound always answers 200 with a markup envelope; unreadable forms
// are treated as empty messages.
func (h *Handler) handleInbound(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Printf("[webhook] parse form failed, continuing with empty fields: %v", err)
	}

	msg := message.FromForm(r.PostForm, h.maxMedia)
	reply := h.bot.Respond(r.Context(), msg)

	log.Printf("[webhook] session=%s from=%s route=%s media=%d body=%q", reply.SessionID, msg.From, reply.Route, msg.NumMedia, utils.PreviewText(msg.Body, maxLogText))

	body, err := twiml.Messages(reply.Text)
	if err != nil {
		log.Printf("[webhook] %v", err)
		body = twiml.Empty
	}
	utils.RespondXML(w, http.StatusOK, body)
}
