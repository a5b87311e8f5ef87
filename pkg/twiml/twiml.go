// Package twiml renders webhook replies in the provider's markup envelope:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<Response><Message>text</Message></Response>
package twiml

import (
	"fmt"

	twilio "github.com/twilio/twilio-go/twiml"
)

// ContentType is what the provider expects for markup replies.
const ContentType = "text/xml"

// Empty is a valid envelope with no messages, used when encoding fails.
var Empty = []byte(`<?xml version="1.0" encoding="UTF-8"?><Response></Response>`)

// Messages wraps the given texts, one Message verb each.
func Messages(texts ...string) ([]byte, error) {
	verbs := make([]twilio.Element, 0, len(texts))
	for _, text := range texts {
		verbs = append(verbs, &twilio.MessagingMessage{Body: text})
	}

	doc, err := twilio.Messages(verbs)
	if err != nil {
		return nil, fmt.Errorf("encode twiml: %w", err)
	}
	return []byte(doc), nil
}
