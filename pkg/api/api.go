// Package api holds the JSON bodies of the session HTTP API. The server and
// the console client both use them.
package api

import "github.com/google/uuid"

type StartSessionRequest struct {
	Theme      string `json:"theme"`
	PlayerName string `json:"player_name"`
}

type StartSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Intro     string    `json:"intro"`
}

// ViewResponse is a read-only snapshot of a session.
type ViewResponse struct {
	SessionID   uuid.UUID `json:"session_id"`
	CurrentRoom string    `json:"current_room"` // rendered room text
	Won         bool      `json:"won"`
	Visited     []int     `json:"visited"`
	Inventory   []string  `json:"inventory"`
}

type ActionRequest struct {
	Action string   `json:"action"`
	Params []string `json:"params,omitempty"`
}

// ActionResponse is the result of one turn. ErrorKind is set when the turn
// was rejected; the session is unchanged in that case.
type ActionResponse struct {
	Outcome     string `json:"outcome"`
	CurrentRoom string `json:"current_room"`
	Won         bool   `json:"won"`
	Ended       bool   `json:"ended"`
	ErrorKind   string `json:"error_kind,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
