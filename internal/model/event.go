package model

import "time"

// Inbound frame types.
const (
	EventEnterRoom        = "enterRoom"
	EventCreateRoom       = "createRoom"
	EventStartQuiz        = "startQuiz"
	EventSkipQuestion     = "skipQuestion"
	EventSubmitAnswer     = "submitAnswer"
	EventNextQuestion     = "nextQuestion"
	EventLeaveRoom        = "leaveRoom"
	EventGetQuestionCount = "getQuestionCount"
	EventAskForAnswers    = "askForAnswers"
)

// Outbound frame types.
const (
	EventRoomList                 = "roomList"
	EventUserList                 = "userList"
	EventQuestion                 = "question"
	EventAnswers                  = "answers"
	EventEvaluatedAnswer          = "evaluatedAnswer"
	EventQuizOver                 = "quizOver"
	EventNewHost                  = "newHost"
	EventUserJoinedRoom           = "userJoinedRoom"
	EventLeftRoom                 = "leftRoom"
	EventFailedToken              = "failedToken"
	EventWrongPassword            = "wrongPassword"
	EventQuestionCountForCategory = "questionCountForCategory"
	EventListOfCategories         = "listOfCategories"
)

// Both directions.
const (
	EventMessage  = "message"
	EventActivity = "activity"
)

const AdminName = "Admin"

type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Time string `json:"time"`
}

func NewChatMessage(name, text string, at time.Time) ChatMessage {
	return ChatMessage{
		Name: name,
		Text: text,
		Time: at.Format(time.TimeOnly),
	}
}

type RoomView struct {
	Name          string     `json:"room"`
	QuestionCount int        `json:"questionCount"`
	Category      string     `json:"category"`
	GameStatus    GameStatus `json:"gameStatus"`
	RoomStatus    RoomStatus `json:"roomStatus"`
	TimerEnabled  bool       `json:"timerEnabled"`
	TimerDuration *int       `json:"timer"`
	GameHost      string     `json:"gameHost"`
	Players       int        `json:"players"`
}

type RoomListPayload struct {
	Rooms []RoomView `json:"rooms"`
}

type UserView struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type UserListPayload struct {
	Users []UserView `json:"users"`
}

type QuestionPayload struct {
	CurrentQuestion int    `json:"currentQuestion"`
	QuestionCount   int    `json:"questionCount"`
	TimerEnabled    bool   `json:"timerEnabled"`
	TimerDuration   *int   `json:"timerDuration"`
	QuestionID      int    `json:"question_id"`
	Question        string `json:"question"`
	GameHost        string `json:"gameHost"`
}

type EvaluatedAnswerPayload struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
	Score   int    `json:"score"`
}

type QuizOverPayload struct {
	Scores  []UserView        `json:"scores"`
	Answers map[string][]bool `json:"answers"`
}

type NewHostPayload struct {
	GameHost   string     `json:"gameHost"`
	GameStatus GameStatus `json:"gameStatus"`
}

type UserJoinedRoomPayload struct {
	RoomName string `json:"roomName"`
	RoomHost string `json:"roomHost"`
}

type QuestionCountPayload struct {
	Count int `json:"count"`
}
