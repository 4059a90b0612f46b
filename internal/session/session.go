package session

import (
	"session-service/internal/clock"
	"session-service/internal/netinfo"
)

// Status enumerates the two session states. Exactly one holds at
// any time; logout flips Active to Inactive and update flips back.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"

	// StatusAny disables status filtering in FindAll.
	StatusAny Status = ""
)

// ClientInfo is the caller's network identity as seen by the server.
// The MAC is client-supplied at login; the IP is derived from the
// inbound request address.
type ClientInfo struct {
	IP  string `json:"ip"`
	MAC string `json:"mac"`
}

// Session is the tracked record. Timestamps are stored in the
// clock display layout, not RFC3339.
type Session struct {
	SessionID    string       `json:"sessionId"`
	Email        string       `json:"email"`
	Nickname     string       `json:"nickname"`
	ClientInfo   ClientInfo   `json:"clientInfo"`
	ServerInfo   netinfo.Info `json:"serverInfo"`
	Status       Status       `json:"status"`
	CreatedAt    string       `json:"createdAt"`
	LastAccessed string       `json:"lastAccessed"`
	UpdatedAt    string       `json:"updatedAt"`
}

// View is a Session annotated for read responses: network identity
// recomputed at read time plus the inactivity breakdown.
type View struct {
	Session
	InactivityTime clock.Inactivity `json:"inactivityTime"`
}
