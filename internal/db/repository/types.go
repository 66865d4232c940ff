package repository

// Category is a stored category row.
type Category struct {
	Title  string
	Active bool
}

// Choice is a stored answer choice. ID is assigned by the database.
type Choice struct {
	ID      int64
	Title   string
	Correct bool
}

// Question is a stored question aggregate: the question row plus every
// choice row owned by it.
type Question struct {
	ID       int64
	Text     string
	Category string
	Choices  []Choice
}

// ChoiceParams describes one choice of a question being created.
type ChoiceParams struct {
	Title   string
	Correct bool
}

// SaveQuestionParams describes a question to create. Choices are inserted
// in the order given; the returned aggregate carries their generated ids
// in the same order.
type SaveQuestionParams struct {
	Text     string
	Category string
	Choices  []ChoiceParams
}

// SaveStatus reports whether an upsert inserted a new row or hit an
// existing one. The distinction is observable to API clients.
type SaveStatus int

const (
	// SaveStatusCreated means a new row was inserted.
	SaveStatusCreated SaveStatus = iota
	// SaveStatusExists means a row with the same key was already present.
	SaveStatusExists
)

func (s SaveStatus) String() string {
	if s == SaveStatusCreated {
		return "created"
	}
	return "exists"
}
