// Command validate checks a saved session document, as stored in Redis under
// session:{id}, against the house invariants.
//
//	redis-cli GET session:<id> > session.json
//	validate session.json
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jwebster45206/murder-house/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <session.json | ->\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("Validating %s...\n", filename)

	gs, err := validateFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session %s is valid (room %d, %d rooms visited, %d items carried, outcome %s)\n",
		gs.ID, gs.CurrentRoom, len(gs.VisitedRooms()), len(gs.Inventory), gs.Outcome)
}

func validateFile(filename string) (*state.GameState, error) {
	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return validateDocument(data)
}

func validateDocument(data []byte) (*state.GameState, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("document contains invalid JSON")
	}

	var gs state.GameState
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&gs); err != nil {
		return nil, fmt.Errorf("document failed strict JSON unmarshaling: %w", err)
	}

	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return &gs, nil
}
