package live

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	PlanID   string          `json:"planId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	TypeWelcome     = "welcome"
	TypePlanUpdated = "plan.updated"
	TypeError       = "error"
)

// WelcomePayload is sent once to a watcher right after it joins.
type WelcomePayload struct {
	PlanID   string `json:"planId"`
	ClientID string `json:"clientId"`
}

// PlanUpdatedPayload tells watchers a save went through and which version
// the server now holds. Watchers re-fetch the plan; no deltas travel over
// the wire.
type PlanUpdatedPayload struct {
	PlanID  string `json:"planId"`
	Version int    `json:"version"`
}
