package question

// Choice is one answer option of a question.
type Choice struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Correct bool   `json:"correct"`
}

// Question is a quiz question with its full choice set. The text field is
// serialized as "question" to match the public API contract.
type Question struct {
	ID       int64    `json:"id"`
	Text     string   `json:"question"`
	Category string   `json:"category"`
	Choices  []Choice `json:"choices"`
}

// NewChoice describes a choice of a question being created.
type NewChoice struct {
	Title   string `json:"title"`
	Correct bool   `json:"correct"`
}

// NewQuestion describes a question being created.
type NewQuestion struct {
	Text     string      `json:"question"`
	Category string      `json:"category"`
	Choices  []NewChoice `json:"choices"`
}
