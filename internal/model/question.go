package model

type Question struct {
	ID   int    `json:"question_id" db:"question_id"`
	Text string `json:"question" db:"question"`
}

type Answer struct {
	ID         int    `json:"answer_id" db:"answer_id"`
	Text       string `json:"answer" db:"answer"`
	QuestionID int    `json:"question_id" db:"question_id"`
}
