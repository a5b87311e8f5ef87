package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-whatsapp/backend/internal/config"
	"github.com/zhouzirui/z-whatsapp/backend/internal/handler/health"
	"github.com/zhouzirui/z-whatsapp/backend/internal/handler/sandbox"
	"github.com/zhouzirui/z-whatsapp/backend/internal/handler/webhook"
	"github.com/zhouzirui/z-whatsapp/backend/internal/model/session"
	botService "github.com/zhouzirui/z-whatsapp/backend/internal/service/bot"
)

// NewRouter wires HTTP routes to the bot.
func NewRouter(cfg *config.Config, sessions session.Store, botSvc *botService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	health.New(sessions, botSvc.TimeZone()).RegisterRoutes(r)
	webhook.New(botSvc, cfg.Bot.MaxMedia).RegisterRoutes(r)

	if cfg.Server.SandboxEnabled {
		sandbox.NewWebSocketHandler(botSvc, cfg.Bot.MaxMedia).RegisterRoutes(r)
	}

	return r
}
