package twiml

import (
	"encoding/xml"
	"strings"
	"testing"
)

type envelope struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

func decode(t *testing.T, out []byte) envelope {
	t.Helper()
	var env envelope
	if err := xml.Unmarshal(out, &env); err != nil {
		t.Fatalf("Unmarshal %q err: %v", out, err)
	}
	return env
}

func TestMessagesSingle(t *testing.T) {
	out, err := Messages("hola")
	if err != nil {
		t.Fatalf("Messages err: %v", err)
	}

	if !strings.HasPrefix(string(out), "<?xml") {
		t.Fatalf("missing xml declaration: %s", out)
	}
	env := decode(t, out)
	if len(env.Messages) != 1 || env.Messages[0] != "hola" {
		t.Fatalf("unexpected envelope: %s", out)
	}
}

func TestMessagesEscapesMarkup(t *testing.T) {
	text := "Recibí: \"<b>&</b>\" ✅\nEscribe *menu*"
	out, err := Messages(text)
	if err != nil {
		t.Fatalf("Messages err: %v", err)
	}
	if strings.Contains(string(out), "<b>") {
		t.Fatalf("markup not escaped: %s", out)
	}

	env := decode(t, out)
	if len(env.Messages) != 1 || env.Messages[0] != text {
		t.Fatalf("unexpected decoded body: %q", env.Messages)
	}
}

func TestMessagesKeepsOrder(t *testing.T) {
	out, err := Messages("uno", "dos")
	if err != nil {
		t.Fatalf("Messages err: %v", err)
	}

	env := decode(t, out)
	if len(env.Messages) != 2 || env.Messages[0] != "uno" || env.Messages[1] != "dos" {
		t.Fatalf("unexpected messages: %q", env.Messages)
	}
}

func TestEmptyIsValid(t *testing.T) {
	if env := decode(t, Empty); len(env.Messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(env.Messages))
	}
}
