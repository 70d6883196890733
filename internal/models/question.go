package models

// Question is one multiple-choice vocabulary question served from the
// wordbank. Question content carries no progression invariants; it exists so
// the quiz UI has something to render.
type Question struct {
	ID          int      `json:"id"`
	Word        string   `json:"word"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}
