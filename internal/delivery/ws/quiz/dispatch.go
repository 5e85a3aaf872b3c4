package ws_quiz

import (
	"encoding/json"
	"errors"

	"github.com/humanbelnik/quizroom/core/internal/model"
	usecase_presence "github.com/humanbelnik/quizroom/core/internal/usecase/presence"
	usecase_quiz "github.com/humanbelnik/quizroom/core/internal/usecase/quiz"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
)

type enterRoomDTO struct {
	Token    string `json:"token"`
	Room     string `json:"room"`
	Password string `json:"password"`
}

type createRoomDTO struct {
	Token               string `json:"token"`
	Room                string `json:"room"`
	QuestionCount       int    `json:"questionCount"`
	Category            string `json:"category"`
	TimerEnabled        bool   `json:"timerEnabled"`
	Timer               int    `json:"timer"`
	PrivateRoomEnabled  bool   `json:"privateRoomEnabled"`
	PrivateRoomPassword string `json:"privateRoomPassword"`
}

type submitAnswerDTO struct {
	PlayerAnswer int `json:"playerAnswer"`
	QuestionID   int `json:"question_id"`
}

type questionCountDTO struct {
	Category string `json:"category"`
}

type askForAnswersDTO struct {
	QuestionID int `json:"question_id"`
}

type messageDTO struct {
	Text string `json:"text"`
}

func (c *Controller) dispatch(connID string, in inboundEvent) {
	ctx := c.baseCtx

	var err error
	switch in.Type {
	case model.EventEnterRoom:
		var dto enterRoomDTO
		if err = decode(in.Payload, &dto); err == nil {
			err = c.presence.Join(ctx, connID, dto.Token, dto.Room, dto.Password)
		}

	case model.EventCreateRoom:
		var dto createRoomDTO
		if err = decode(in.Payload, &dto); err == nil {
			err = c.presence.CreateAndJoin(ctx, connID, dto.Token, usecase_room.Settings{
				Name:          dto.Room,
				QuestionCount: dto.QuestionCount,
				Category:      dto.Category,
				TimerEnabled:  dto.TimerEnabled,
				TimerDuration: dto.Timer,
				Private:       dto.PrivateRoomEnabled,
				Password:      dto.PrivateRoomPassword,
			})
		}

	case model.EventStartQuiz:
		err = c.quiz.Start(ctx, connID)

	case model.EventSubmitAnswer:
		var dto submitAnswerDTO
		if err = decode(in.Payload, &dto); err == nil {
			err = c.quiz.Submit(ctx, connID, dto.PlayerAnswer, dto.QuestionID)
		}

	case model.EventNextQuestion:
		err = c.quiz.Next(ctx, connID)

	case model.EventSkipQuestion:
		err = c.quiz.Skip(ctx, connID)

	case model.EventAskForAnswers:
		var dto askForAnswersDTO
		if err = decode(in.Payload, &dto); err == nil {
			err = c.quiz.Answers(ctx, connID, dto.QuestionID)
		}

	case model.EventGetQuestionCount:
		var dto questionCountDTO
		if err = decode(in.Payload, &dto); err == nil {
			err = c.quiz.QuestionCount(ctx, connID, dto.Category)
		}

	case model.EventLeaveRoom:
		err = c.presence.LeaveRoom(connID)

	case model.EventMessage:
		var dto messageDTO
		if err = decode(in.Payload, &dto); err == nil {
			err = c.presence.Message(connID, dto.Text)
		}

	case model.EventActivity:
		err = c.presence.Activity(connID)

	default:
		c.logger.Debug("unknown event", "conn", connID, "type", in.Type)
		return
	}

	if err != nil {
		c.handleError(connID, in.Type, err)
	}
}

var errBadPayload = errors.New("malformed payload")

func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errBadPayload
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Join(errBadPayload, err)
	}
	return nil
}

func (c *Controller) handleError(connID, event string, err error) {
	log := c.logger.With("conn", connID, "event", event, "error", err)

	switch {
	case errors.Is(err, usecase_presence.ErrAuth):
		log.Warn("authentication failed")
		c.hub.Emit(connID, model.EventFailedToken, nil)
		c.hub.Disconnect(connID)

	case errors.Is(err, usecase_room.ErrWrongPassword):
		log.Info("wrong room password")
		c.hub.Emit(connID, model.EventWrongPassword, nil)

	case errors.Is(err, usecase_room.ErrInvalidSettings):
		log.Info("invalid room settings")
		c.rooms.Tell(connID, "Invalid room settings")

	case errors.Is(err, errBadPayload):
		log.Warn("malformed frame")

	case errors.Is(err, usecase_room.ErrRoomNotFound),
		errors.Is(err, usecase_room.ErrUserNotFound):
		log.Warn("event dropped")

	case errors.Is(err, usecase_quiz.ErrQuestionBank):
		log.Error("question bank failure")

	case errors.Is(err, usecase_quiz.ErrNotAuthorized),
		errors.Is(err, usecase_quiz.ErrWaiting),
		errors.Is(err, usecase_quiz.ErrWrongState),
		errors.Is(err, usecase_quiz.ErrAlreadyAnswered):
		log.Debug("event ignored")

	default:
		log.Error("event failed")
	}
}
