package session

import "time"

// Session is the per-sender record kept for the lifetime of the process.
type Session struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Name      string    `json:"name,omitempty"`
	Messages  int       `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

// HasName reports whether the sender saved a display name.
func (s Session) HasName() bool {
	return s.Name != ""
}
