package question

import "fmt"

// ValidationError rejects a question before it reaches storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// validate checks a new question against the content rules. A question may
// have no correct choice (a survey-style question) but never more than one.
func validate(q NewQuestion) error {
	if q.Text == "" {
		return ValidationError{Field: "question", Message: "must not be empty"}
	}
	if q.Category == "" {
		return ValidationError{Field: "category", Message: "must not be empty"}
	}
	for _, c := range q.Choices {
		if c.Title == "" {
			return ValidationError{Field: "choices", Message: "choice titles must not be empty"}
		}
	}
	correct := 0
	for _, c := range q.Choices {
		if c.Correct {
			correct++
		}
	}
	if correct > 1 {
		return ValidationError{Field: "choices", Message: "at most one choice may be correct"}
	}
	return nil
}
