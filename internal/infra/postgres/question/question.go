package infra_postgres_question

import (
	"context"
	"database/sql"
	"errors"

	"github.com/humanbelnik/quizroom/core/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrNoQuestions = errors.New("category has no questions")

// Driver reads the question bank.
//
//	quizzes(quiz_id, quiz_name)
//	questions(question_id, quiz_id, question)
//	answers(answer_id, question_id, answer, valid)
type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

func (d *Driver) RandomQuestion(ctx context.Context, category string) (model.Question, error) {
	query := `
		SELECT q.question_id, q.question
		FROM questions q
		JOIN quizzes z ON q.quiz_id = z.quiz_id
		WHERE z.quiz_name = $1
		ORDER BY RANDOM()
		LIMIT 1
	`

	var question model.Question
	err := d.db.GetContext(ctx, &question, query, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Question{}, ErrNoQuestions
		}
		return model.Question{}, err
	}
	return question, nil
}

func (d *Driver) IsAnswerCorrect(ctx context.Context, questionID, answerID int) (bool, error) {
	query := `
		SELECT valid
		FROM answers
		WHERE question_id = $1 AND answer_id = $2
	`

	var valid bool
	err := d.db.GetContext(ctx, &valid, query, questionID, answerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return valid, nil
}

func (d *Driver) Answers(ctx context.Context, questionID int) ([]model.Answer, error) {
	query := `
		SELECT answer_id, answer, question_id
		FROM answers
		WHERE question_id = $1
		ORDER BY answer_id
	`

	answers := make([]model.Answer, 0)
	if err := d.db.SelectContext(ctx, &answers, query, questionID); err != nil {
		return nil, err
	}
	return answers, nil
}

func (d *Driver) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT quiz_name
		FROM quizzes
		ORDER BY quiz_name
	`

	categories := make([]string, 0)
	if err := d.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (d *Driver) CountQuestions(ctx context.Context, category string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM questions q
		JOIN quizzes z ON q.quiz_id = z.quiz_id
		WHERE z.quiz_name = $1
	`

	var count int
	if err := d.db.GetContext(ctx, &count, query, category); err != nil {
		return 0, err
	}
	return count, nil
}
