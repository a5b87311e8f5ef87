package message

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/zhouzirui/z-whatsapp/backend/pkg/utils"
)

// Form field names posted by the messaging provider.
const (
	FieldBody           = "Body"
	FieldFrom           = "From"
	FieldNumMedia       = "NumMedia"
	FieldMediaURLPrefix = "MediaUrl"
	FieldLatitude       = "Latitude"
	FieldLongitude      = "Longitude"
)

// Incoming is one inbound chat message. It only lives for a single request.
type Incoming struct {
	From      string   `json:"from"`
	Body      string   `json:"body"`
	NumMedia  int      `json:"numMedia"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
	Latitude  string   `json:"latitude,omitempty"`
	Longitude string   `json:"longitude,omitempty"`
}

// HasMedia reports whether the message carries attachments.
func (m Incoming) HasMedia() bool {
	return m.NumMedia > 0
}

// HasLocation reports whether both coordinates were sent.
func (m Incoming) HasLocation() bool {
	return m.Latitude != "" && m.Longitude != ""
}

// DefaultMaxMedia is the provider's per-message attachment limit, used when
// FromForm is given no positive cap.
const DefaultMaxMedia = 10

// FromForm decodes provider form values. Missing fields become zero values;
// at most maxMedia media URLs are read.
func FromForm(values url.Values, maxMedia int) Incoming {
	if maxMedia <= 0 {
		maxMedia = DefaultMaxMedia
	}

	msg := Incoming{
		From:      values.Get(FieldFrom),
		Body:      strings.TrimSpace(values.Get(FieldBody)),
		Latitude:  values.Get(FieldLatitude),
		Longitude: values.Get(FieldLongitude),
	}

	numMedia, ok := utils.ParseLeadingInt(values.Get(FieldNumMedia))
	if !ok || numMedia < 0 {
		numMedia = 0
	}
	if numMedia > maxMedia {
		numMedia = maxMedia
	}
	msg.NumMedia = numMedia

	if numMedia > 0 {
		msg.MediaURLs = make([]string, numMedia)
		for i := range numMedia {
			msg.MediaURLs[i] = values.Get(FieldMediaURLPrefix + strconv.Itoa(i))
		}
	}

	return msg
}
