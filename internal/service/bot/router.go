package bot

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zhouzirui/z-whatsapp/backend/internal/analysis/calc"
	"github.com/zhouzirui/z-whatsapp/backend/internal/model/session"
	"github.com/zhouzirui/z-whatsapp/backend/pkg/utils"
)

const (
	defaultDiceSides = 6
	minDiceSides     = 2
	maxDiceSides     = 1000
)

// RouteFallback names the onboarding/acknowledgement reply.
const RouteFallback = "fallback"

// nameCandidate matches a lone word that could be a first name.
var nameCandidate = regexp.MustCompile(`(?i)^[a-záéíóúñü]{2,20}$`)

type request struct {
	from    string
	body    string // trimmed, original case
	text    string // lower-cased body
	session session.Session
}

// route is one entry of the ordered first-match-wins table.
type route struct {
	name   string
	match  func(text string) bool
	handle func(req request) string
}

func equalsAny(values ...string) func(string) bool {
	return func(text string) bool {
		for _, v := range values {
			if text == v {
				return true
			}
		}
		return false
	}
}

func hasPrefix(prefix string) func(string) bool {
	return func(text string) bool {
		return strings.HasPrefix(text, prefix)
	}
}

// argAfter returns the trimmed original-case text following prefix.
func argAfter(req request, prefix string) string {
	if len(req.body) < len(prefix) {
		return ""
	}
	return strings.TrimSpace(req.body[len(prefix):])
}

// buildRoutes returns the command table. Order matters: several commands share
// prefixes with later ones.
func (s *Service) buildRoutes() []route {
	return []route{
		{name: "hola", match: equalsAny("hola", "hello", "hi"), handle: s.handleHelp},
		{name: "menu", match: equalsAny("menu", "ayuda", "?"), handle: s.handleHelp},
		{name: "nombre", match: hasPrefix("nombre "), handle: s.handleSetName},
		{name: "mi-nombre", match: equalsAny("mi nombre?", "mi nombre ?", "mi nombre"), handle: s.handleGetName},
		{name: "hora", match: equalsAny("hora", "fecha", "tiempo"), handle: s.handleTime},
		{name: "eco", match: hasPrefix("eco "), handle: s.handleEcho},
		{name: "dado", match: hasPrefix("dado"), handle: s.handleDice},
		{name: "calc", match: hasPrefix("calc "), handle: s.handleCalc},
		{name: "chiste", match: equalsAny("chiste", "cuentachiste"), handle: s.handleJoke},
	}
}

// RouteNames lists the command routes in evaluation order.
func (s *Service) RouteNames() []string {
	names := make([]string, 0, len(s.routes)+1)
	for _, r := range s.routes {
		names = append(names, r.name)
	}
	return append(names, RouteFallback)
}

// dispatch runs the first matching command, or the fallback.
func (s *Service) dispatch(req request) Reply {
	for _, r := range s.routes {
		if r.match(req.text) {
			return Reply{Text: r.handle(req), Route: r.name}
		}
	}
	return Reply{Text: s.handleFallback(req), Route: RouteFallback}
}

func (s *Service) handleHelp(req request) string {
	return helpText(req.session.Name)
}

func (s *Service) handleSetName(req request) string {
	name := argAfter(req, "nombre ")
	if name == "" {
		return "Por favor, envía:  *nombre TuNombre*"
	}
	s.sessions.SetName(req.from, name)
	return fmt.Sprintf("¡Encantado, %s! ✍️ He guardado tu nombre.\nEscribe *menu* para ver opciones.", name)
}

func (s *Service) handleGetName(req request) string {
	if !req.session.HasName() {
		return "Aún no tengo tu nombre. Envíame:  *nombre TuNombre*"
	}
	return fmt.Sprintf("Tienes guardado el nombre: *%s*", req.session.Name)
}

func (s *Service) handleTime(_ request) string {
	return "🕒 " + FormatNow(s.timeZone, s.now())
}

func (s *Service) handleEcho(req request) string {
	text := argAfter(req, "eco ")
	if text == "" {
		return "Usa: *eco Tu mensaje*"
	}
	return "🗣️ " + text
}

func (s *Service) handleDice(req request) string {
	sides := diceSides(req.text)
	roll := 1 + s.intN(sides)
	return fmt.Sprintf("🎲 D%d → *%d*", sides, roll)
}

// diceSides reads the optional second token; 0 or garbage means the default.
func diceSides(text string) int {
	sides := defaultDiceSides
	if parts := strings.Fields(text); len(parts) > 1 {
		if n, ok := utils.ParseLeadingInt(parts[1]); ok && n != 0 {
			sides = n
		}
	}
	return max(minDiceSides, min(maxDiceSides, sides))
}

func (s *Service) handleCalc(req request) string {
	expr := argAfter(req, "calc ")
	if expr == "" {
		return "Usa: *calc 12.5*3-2^2*  (permitidos: + - * / ^ ( ) )"
	}

	result, err := calc.Eval(expr)
	if err != nil {
		return "No pude calcular eso. " + calcFailure(err)
	}
	return fmt.Sprintf("🧮 %s = *%s*", expr, calc.Format(result))
}

func calcFailure(err error) string {
	switch {
	case errors.Is(err, calc.ErrNonNumericResult):
		return "Resultado no numérico."
	case errors.Is(err, calc.ErrInvalidExpression):
		return "Expresión no permitida."
	default:
		return err.Error()
	}
}

func (s *Service) handleJoke(_ request) string {
	return "😂 " + jokes[s.intN(len(jokes))]
}

func (s *Service) handleFallback(req request) string {
	if !req.session.HasName() && nameCandidate.MatchString(req.body) {
		return fmt.Sprintf("¿Te llamas *%s*? Si quieres, guarda tu nombre con:\n*nombre %s*\n\nEscribe *menu* para ver todo lo que puedo hacer.", req.body, req.body)
	}
	return fmt.Sprintf("Recibí: \"%s\" ✅\nEscribe *menu* para ver opciones.", req.body)
}
