// Package repository implements Postgres persistence for the quiz content
// domain: categories, questions and their choices.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quizzical/quizzical-api/internal/db"
)

// Querier is the subset of pgxpool.Pool the repositories rely on.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	questionPageSQL = `
		SELECT q.id, q.question, q.category
		FROM questions q
		JOIN categories c ON c.title = q.category
		WHERE q.category = $1 AND c.active
		ORDER BY q.id
		LIMIT $2 OFFSET $3`

	choicesByQuestionSQL = `
		SELECT id, question_id, title, correct
		FROM choices
		WHERE question_id = ANY($1)
		ORDER BY id`

	countQuestionsSQL = `
		SELECT COUNT(*)
		FROM questions q
		JOIN categories c ON c.title = q.category
		WHERE q.category = $1 AND c.active`

	insertQuestionSQL = `
		INSERT INTO questions (question, category)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM categories WHERE title = $2 AND active)
		RETURNING id`
)

// QuestionRepository reads and writes question aggregates.
type QuestionRepository struct {
	db Querier
}

// NewQuestionRepository constructs a question repository over a pool.
func NewQuestionRepository(db Querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Questions returns one page of question aggregates for an active category,
// ordered by id. The page of question rows is fetched first; all their
// choices follow in a single second query and are grouped in memory, so the
// round-trip count stays at two regardless of page size. An empty page
// short-circuits before the choice query.
func (r *QuestionRepository) Questions(ctx context.Context, category string, limit, offset int) ([]Question, error) {
	rows, err := r.db.Query(ctx, questionPageSQL, category, limit, offset)
	if err != nil {
		return nil, db.Classify(fmt.Errorf("query questions: %w", err))
	}
	defer rows.Close()

	var questions []Question
	var ids []int64
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Category); err != nil {
			return nil, db.Classify(fmt.Errorf("scan question: %w", err))
		}
		q.Choices = []Choice{}
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(fmt.Errorf("read questions: %w", err))
	}
	if len(questions) == 0 {
		return nil, nil
	}

	grouped, err := r.choicesByQuestion(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if choices, ok := grouped[questions[i].ID]; ok {
			questions[i].Choices = choices
		}
	}
	return questions, nil
}

func (r *QuestionRepository) choicesByQuestion(ctx context.Context, questionIDs []int64) (map[int64][]Choice, error) {
	rows, err := r.db.Query(ctx, choicesByQuestionSQL, questionIDs)
	if err != nil {
		return nil, db.Classify(fmt.Errorf("query choices: %w", err))
	}
	defer rows.Close()

	grouped := make(map[int64][]Choice, len(questionIDs))
	for rows.Next() {
		var c Choice
		var questionID int64
		if err := rows.Scan(&c.ID, &questionID, &c.Title, &c.Correct); err != nil {
			return nil, db.Classify(fmt.Errorf("scan choice: %w", err))
		}
		grouped[questionID] = append(grouped[questionID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(fmt.Errorf("read choices: %w", err))
	}
	return grouped, nil
}

// CountQuestions counts the questions of an active category. A category
// that is absent or inactive counts as zero, not as an error.
func (r *QuestionRepository) CountQuestions(ctx context.Context, category string) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countQuestionsSQL, category).Scan(&count); err != nil {
		return 0, db.Classify(fmt.Errorf("count questions: %w", err))
	}
	return count, nil
}

// SaveQuestion inserts a question and all of its choices in one
// transaction. Any failure rolls the whole write back; readers never see a
// question row without its choices. The returned aggregate carries the
// generated ids.
func (r *QuestionRepository) SaveQuestion(ctx context.Context, params SaveQuestionParams) (Question, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Question{}, db.Classify(fmt.Errorf("begin: %w", err))
	}
	// Rollback after a successful commit is a no-op, so every early return
	// below leaves the store untouched.
	defer tx.Rollback(ctx)

	// The insert is gated on the category being active, so an absent or
	// deactivated category surfaces as no generated id rather than an FK
	// violation.
	var questionID int64
	if err := tx.QueryRow(ctx, insertQuestionSQL, params.Text, params.Category).Scan(&questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, &db.Error{Kind: db.KindDatabase, Message: fmt.Sprintf("category %q is absent or inactive", params.Category)}
		}
		return Question{}, db.Classify(fmt.Errorf("insert question: %w", err))
	}

	choices, err := insertChoices(ctx, tx, questionID, params.Choices)
	if err != nil {
		return Question{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Question{}, db.Classify(fmt.Errorf("commit: %w", err))
	}

	return Question{
		ID:       questionID,
		Text:     params.Text,
		Category: params.Category,
		Choices:  choices,
	}, nil
}

func insertChoices(ctx context.Context, tx pgx.Tx, questionID int64, params []ChoiceParams) ([]Choice, error) {
	choices := make([]Choice, 0, len(params))
	if len(params) == 0 {
		return choices, nil
	}

	args := make([]any, 0, len(params)*3)
	for _, c := range params {
		args = append(args, questionID, c.Title, c.Correct)
	}

	rows, err := tx.Query(ctx, insertChoicesSQL(len(params)), args...)
	if err != nil {
		return nil, db.Classify(fmt.Errorf("insert choices: %w", err))
	}
	defer rows.Close()

	// Postgres returns RETURNING rows of a multi-row VALUES insert in
	// insertion order, so the generated ids can be zipped positionally
	// with the submitted choices.
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, db.Classify(fmt.Errorf("scan choice id: %w", err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(fmt.Errorf("read choice ids: %w", err))
	}
	if len(ids) != len(params) {
		return nil, db.Classify(fmt.Errorf("insert choices: expected %d generated ids, got %d", len(params), len(ids)))
	}

	for i, c := range params {
		choices = append(choices, Choice{ID: ids[i], Title: c.Title, Correct: c.Correct})
	}
	return choices, nil
}

// insertChoicesSQL builds the bulk choice insert for n choices: one
// three-parameter value group per choice. The statement shape depends on n
// but every value is bound as a parameter, never interpolated.
func insertChoicesSQL(n int) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO choices (question_id, title, correct) VALUES ")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
	}
	sb.WriteString(" RETURNING id")
	return sb.String()
}
