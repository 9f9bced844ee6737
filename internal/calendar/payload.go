package calendar

import "encoding/json"

// EventPayload is an event description exchanged as a JSON document, for
// example produced by an upstream extraction step. Summary, start and end
// time are required; the rest is optional.
type EventPayload struct {
	Summary      string   `json:"summary"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Location     string   `json:"location,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

// ParseEventPayload decodes a JSON event payload and validates that the
// required fields are present. Failures are reported as *ParseError.
func ParseEventPayload(data string) (*EventPayload, error) {
	var payload EventPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}

	if payload.Summary == "" {
		return nil, &ParseError{Reason: "missing required field: summary"}
	}
	if payload.StartTime == "" {
		return nil, &ParseError{Reason: "missing required field: start_time"}
	}
	if payload.EndTime == "" {
		return nil, &ParseError{Reason: "missing required field: end_time"}
	}

	return &payload, nil
}
