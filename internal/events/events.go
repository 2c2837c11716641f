package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub during a research run.
const (
	TypeRunStarted   = "run_started"
	TypeRunFinished  = "run_finished"
	TypeStepProgress = "step_progress"
	TypePing         = "ping"
)

type Event struct {
	Type  string          `json:"type"`
	V     int             `json:"v"`
	At    time.Time       `json:"at"`
	RunID string          `json:"run_id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Make serializes one event envelope. Marshal failures degrade to an empty
// data payload rather than a dropped event.
func Make(runID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	e := Event{
		Type:  typ,
		V:     1,
		At:    time.Now().UTC(),
		RunID: runID,
		Data:  raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
