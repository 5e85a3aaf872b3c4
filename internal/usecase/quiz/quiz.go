package usecase_quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/humanbelnik/quizroom/core/internal/model"
	storage_session "github.com/humanbelnik/quizroom/core/internal/storage/session"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
)

var (
	ErrQuestionBank    = errors.New("question bank unavailable")
	ErrNotAuthorized   = errors.New("only the host may do this")
	ErrWrongState      = errors.New("operation not allowed in current game state")
	ErrWaiting         = errors.New("waiting for remaining answers")
	ErrAlreadyAnswered = errors.New("question already answered")
)

const (
	pointsPerAnswer = 10

	msgFetchFailed = "Failed to fetch data from the question bank"
	msgNoAnswers   = "No answers found"
	msgCorrect     = "Correct!"
	msgWrong       = "Wrong!"
)

//go:generate mockery --name=QuestionBank --output=./mocks/questionbank --filename=questionbank.go
type QuestionBank interface {
	RandomQuestion(ctx context.Context, category string) (model.Question, error)
	// IsAnswerCorrect reports false for an unknown question/answer pair.
	IsAnswerCorrect(ctx context.Context, questionID, answerID int) (bool, error)
	Answers(ctx context.Context, questionID int) ([]model.Answer, error)
	Categories(ctx context.Context) ([]string, error)
	CountQuestions(ctx context.Context, category string) (int, error)
}

type Usecase struct {
	registry  *storage_session.Registry
	rooms     *usecase_room.Usecase
	transport usecase_room.Transport
	bank      QuestionBank
	logger    *slog.Logger
}

func New(
	registry *storage_session.Registry,
	rooms *usecase_room.Usecase,
	transport usecase_room.Transport,
	bank QuestionBank,
) *Usecase {
	return &Usecase{
		registry:  registry,
		rooms:     rooms,
		transport: transport,
		bank:      bank,
		logger:    slog.Default(),
	}
}

// session resolves the caller and its room and locks the room.
// The caller must release the returned unlock.
func (u *Usecase) session(connID string) (model.User, model.Room, func(), error) {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return model.User{}, model.Room{}, nil, usecase_room.ErrUserNotFound
	}

	unlock := u.registry.Lock(user.Room)

	user, ok = u.registry.GetUser(connID)
	if !ok {
		unlock()
		return model.User{}, model.Room{}, nil, usecase_room.ErrUserNotFound
	}
	room, ok := u.registry.GetRoom(user.Room)
	if !ok {
		unlock()
		return model.User{}, model.Room{}, nil, usecase_room.ErrRoomNotFound
	}
	return user, room, unlock, nil
}

// Start opens the first question. Host only, and only once per room.
func (u *Usecase) Start(ctx context.Context, connID string) error {
	user, room, unlock, err := u.session(connID)
	if err != nil {
		return err
	}
	defer unlock()

	if room.GameHost != user.Name {
		return ErrNotAuthorized
	}
	if room.GameStatus != model.GameOpen {
		return ErrWrongState
	}

	u.logger.Info("quiz started", "room", room.Name, "questions", room.QuestionCount)

	if room.QuestionCount == 0 {
		return u.finish(room.Name, map[string][]bool{})
	}

	question, err := u.bank.RandomQuestion(ctx, room.Category)
	if err != nil {
		return u.bankFailure(room.Name, err)
	}

	u.resetAnswered(room.Name)
	active, first := model.GameActive, 1
	room, err = u.rooms.Update(room.Name, model.RoomPatch{
		GameStatus:        &active,
		CurrentQuestion:   &first,
		CurrentQuestionID: &question.ID,
		PlayerAnswers:     map[string][]bool{},
	})
	if err != nil {
		return err
	}

	u.rooms.BroadcastRoomList()
	u.broadcastQuestion(room, question)
	return nil
}

// Submit scores the caller's answer and tells only the caller the result.
// An answer to any question other than the one on screen counts as wrong.
func (u *Usecase) Submit(ctx context.Context, connID string, answerID, questionID int) error {
	user, room, unlock, err := u.session(connID)
	if err != nil {
		return err
	}
	defer unlock()

	if room.GameStatus != model.GameActive {
		return ErrWrongState
	}
	if user.Answered {
		return ErrAlreadyAnswered
	}

	correct := false
	if questionID == room.CurrentQuestionID {
		correct, err = u.bank.IsAnswerCorrect(ctx, questionID, answerID)
		if err != nil {
			u.logger.Error("failed to evaluate answer", "error", err, "room", room.Name, "question", questionID)
			u.rooms.Tell(connID, msgFetchFailed)
			return errors.Join(ErrQuestionBank, err)
		}
	} else {
		u.logger.Debug("answer to a question not on screen", "room", room.Name, "user", user.Name,
			"question", questionID, "current", room.CurrentQuestionID)
	}

	answers := room.PlayerAnswers
	answers[user.Name] = append(answers[user.Name], correct)
	if _, err := u.rooms.Update(room.Name, model.RoomPatch{PlayerAnswers: answers}); err != nil {
		return err
	}

	user.Answered = true
	if correct {
		user.Score += pointsPerAnswer
	}
	u.registry.PutUser(user)

	msg := msgWrong
	if correct {
		msg = msgCorrect
	}
	u.transport.Emit(connID, model.EventEvaluatedAnswer, model.EvaluatedAnswerPayload{
		Correct: correct,
		Message: msg,
		Score:   user.Score,
	})
	return nil
}

// Next advances once every member has answered the question on screen.
func (u *Usecase) Next(ctx context.Context, connID string) error {
	_, room, unlock, err := u.session(connID)
	if err != nil {
		return err
	}
	defer unlock()

	if room.GameStatus != model.GameActive {
		return ErrWrongState
	}
	if !u.registry.HaveAllAnswered(room.Name) {
		return ErrWaiting
	}
	return u.advance(ctx, room)
}

// Skip advances regardless of pending answers. Host only.
func (u *Usecase) Skip(ctx context.Context, connID string) error {
	user, room, unlock, err := u.session(connID)
	if err != nil {
		return err
	}
	defer unlock()

	if room.GameHost != user.Name {
		return ErrNotAuthorized
	}
	if room.GameStatus != model.GameActive {
		return ErrWrongState
	}
	return u.advance(ctx, room)
}

// Callers hold the room lock.
func (u *Usecase) advance(ctx context.Context, room model.Room) error {
	if room.CurrentQuestion >= room.QuestionCount {
		u.resetAnswered(room.Name)
		return u.finish(room.Name, nil)
	}

	question, err := u.bank.RandomQuestion(ctx, room.Category)
	if err != nil {
		return u.bankFailure(room.Name, err)
	}

	u.resetAnswered(room.Name)
	next := room.CurrentQuestion + 1
	room, err = u.rooms.Update(room.Name, model.RoomPatch{
		CurrentQuestion:   &next,
		CurrentQuestionID: &question.ID,
	})
	if err != nil {
		return err
	}

	u.logger.Debug("question advanced", "room", room.Name, "question", room.CurrentQuestion)
	u.broadcastQuestion(room, question)
	return nil
}

// finish closes the game. A non-nil answers replaces the answer log first.
// Callers hold the room lock.
func (u *Usecase) finish(name string, answers map[string][]bool) error {
	finished := model.GameFinished
	room, err := u.rooms.Update(name, model.RoomPatch{
		GameStatus:    &finished,
		PlayerAnswers: answers,
	})
	if err != nil {
		return err
	}

	members := u.registry.UsersInRoom(room.Name)
	scores := make([]model.UserView, 0, len(members))
	for _, m := range members {
		scores = append(scores, model.UserView{Name: m.Name, Score: m.Score})
	}

	u.logger.Info("quiz finished", "room", room.Name, "players", len(scores))

	u.transport.EmitToRoom(room.Name, model.EventQuizOver, model.QuizOverPayload{
		Scores:  scores,
		Answers: room.PlayerAnswers,
	})
	u.rooms.BroadcastRoomList()
	return nil
}

func (u *Usecase) resetAnswered(room string) {
	for _, m := range u.registry.UsersInRoom(room) {
		if m.Answered {
			m.Answered = false
			u.registry.PutUser(m)
		}
	}
}

func (u *Usecase) broadcastQuestion(room model.Room, q model.Question) {
	u.transport.EmitToRoom(room.Name, model.EventQuestion, model.QuestionPayload{
		CurrentQuestion: room.CurrentQuestion,
		QuestionCount:   room.QuestionCount,
		TimerEnabled:    room.TimerEnabled,
		TimerDuration:   room.TimerDuration,
		QuestionID:      q.ID,
		Question:        q.Text,
		GameHost:        room.GameHost,
	})
}

func (u *Usecase) bankFailure(room string, err error) error {
	u.logger.Error("question bank failure", "error", err, "room", room)
	u.rooms.Announce(room, msgFetchFailed)
	return errors.Join(ErrQuestionBank, err)
}

// Answers broadcasts the answer options of a question to the caller's room.
func (u *Usecase) Answers(ctx context.Context, connID string, questionID int) error {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return usecase_room.ErrUserNotFound
	}

	answers, err := u.bank.Answers(ctx, questionID)
	if err != nil {
		u.logger.Error("failed to fetch answers", "error", err, "question", questionID)
		u.rooms.Tell(connID, msgFetchFailed)
		return errors.Join(ErrQuestionBank, err)
	}
	if len(answers) == 0 {
		u.rooms.Announce(user.Room, msgNoAnswers)
		return nil
	}

	u.transport.EmitToRoom(user.Room, model.EventAnswers, answers)
	return nil
}

// QuestionCount replies with the number of questions available in category.
func (u *Usecase) QuestionCount(ctx context.Context, connID, category string) error {
	count, err := u.CountQuestions(ctx, category)
	if err != nil {
		u.rooms.Tell(connID, msgFetchFailed)
		return err
	}
	u.transport.Emit(connID, model.EventQuestionCountForCategory, model.QuestionCountPayload{Count: count})
	return nil
}

func (u *Usecase) CountQuestions(ctx context.Context, category string) (int, error) {
	count, err := u.bank.CountQuestions(ctx, category)
	if err != nil {
		return 0, errors.Join(ErrQuestionBank, err)
	}
	return count, nil
}

func (u *Usecase) Categories(ctx context.Context) ([]string, error) {
	categories, err := u.bank.Categories(ctx)
	if err != nil {
		return nil, errors.Join(ErrQuestionBank, err)
	}
	return categories, nil
}
