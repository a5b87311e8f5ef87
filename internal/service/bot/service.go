package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/zhouzirui/z-whatsapp/backend/internal/config"
	"github.com/zhouzirui/z-whatsapp/backend/internal/model/message"
	"github.com/zhouzirui/z-whatsapp/backend/internal/model/session"
)

// Route names reported alongside every reply.
const (
	RouteMedia    = "media"
	RouteLocation = "location"
)

// Config controls the bot. Now and IntN default to the wall clock and
// math/rand/v2; tests inject deterministic versions.
type Config struct {
	TimeZone string
	Now      func() time.Time
	// IntN returns a uniform integer in [0, n).
	IntN func(n int) int
}

// Reply is the text sent back to the sender plus the route that produced it.
// SessionID identifies the sender's session in logs.
type Reply struct {
	Text      string
	Route     string
	SessionID string
}

// Service turns an inbound message into a reply.
type Service struct {
	sessions session.Store
	timeZone string
	now      func() time.Time
	intN     func(n int) int
	routes   []route
}

// NewService builds the bot around a session store.
func NewService(sessions session.Store, cfg Config) *Service {
	svc := &Service{
		sessions: sessions,
		timeZone: strings.TrimSpace(cfg.TimeZone),
		now:      cfg.Now,
		intN:     cfg.IntN,
	}
	if svc.timeZone == "" {
		svc.timeZone = config.DefaultTimeZone
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.intN == nil {
		svc.intN = rand.IntN
	}
	svc.routes = svc.buildRoutes()
	return svc
}

// TimeZone returns the zone used for date replies.
func (s *Service) TimeZone() string {
	return s.timeZone
}

// Respond resolves the sender's session and produces the reply. Media and
// location messages bypass the command routes entirely.
func (s *Service) Respond(_ context.Context, msg message.Incoming) Reply {
	sess := s.sessions.Touch(msg.From)

	reply := s.route(msg, sess)
	reply.SessionID = sess.ID
	return reply
}

func (s *Service) route(msg message.Incoming, sess session.Session) Reply {
	if msg.HasMedia() {
		return Reply{Text: mediaReply(msg.NumMedia, msg.MediaURLs), Route: RouteMedia}
	}

	if msg.HasLocation() {
		return Reply{Text: locationReply(msg.Latitude, msg.Longitude), Route: RouteLocation}
	}

	return s.dispatch(request{
		from:    msg.From,
		body:    msg.Body,
		text:    strings.ToLower(msg.Body),
		session: sess,
	})
}

func mediaReply(count int, urls []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📎 Recibí %d archivo(s).\n", count)
	for i, u := range urls {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "#%d: %s", i+1, u)
	}
	return b.String()
}

func locationReply(latitude, longitude string) string {
	return fmt.Sprintf("📍 Gracias por la ubicación.\nLat: %s\nLon: %s", latitude, longitude)
}
