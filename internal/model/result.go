package model

// QueryResult is the single object the pipeline hands back to its caller.
// Data and Intent are nil when the query produced no table or the pipeline
// failed before extraction completed.
type QueryResult struct {
	Message string            `json:"message"`
	Data    *ObservationTable `json:"data,omitempty"`
	Intent  *Intent           `json:"intent,omitempty"`
}

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation with the language model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered conversation history exchanged with the
// language model. It is a value: callers pass the prior transcript in and
// receive an appended copy back, so no component holds implicit history.
type Transcript []Turn

// Append returns a new transcript with the turn added. The receiver is not
// mutated beyond what slice append semantics allow; callers should use the
// returned value.
func (t Transcript) Append(role, content string) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, Turn{Role: role, Content: content})
}
