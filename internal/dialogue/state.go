// Package dialogue implements the conversation state machine: spot and beach
// selection, the query menu, and free-date entry, with a global "back" command
// and restart keywords. State is a small serializable value so any chat
// surface (Kafka bridge, CLI) can persist it per user however it likes.
package dialogue

// Conversation phases. Every turn resolves to exactly one of these.
const (
	PhaseChoosingSpot  = "choosing_spot"
	PhaseChoosingBeach = "choosing_beach"
	PhaseQueryMenu     = "query_menu"
	PhaseAwaitingDate  = "awaiting_date"
)

// State is one user's position in the conversation. The zero value is not
// valid; use NewState. Keys refer to the catalog and may be stale if the
// catalog changes between turns, which the engine treats as a reset.
type State struct {
	Phase    string `json:"phase"`
	SpotKey  string `json:"spot_key,omitempty"`
	BeachKey string `json:"beach_key,omitempty"`
}

// NewState returns the initial state: choosing a spot, nothing selected.
func NewState() State {
	return State{Phase: PhaseChoosingSpot}
}
