package model

type GameStatus string

const (
	GameOpen     GameStatus = "open"
	GameActive   GameStatus = "active"
	GameFinished GameStatus = "finished"
)

type RoomStatus string

const (
	RoomOpen    RoomStatus = "open"
	RoomPrivate RoomStatus = "private"
)

type Room struct {
	Name              string
	CurrentQuestion   int
	QuestionCount     int
	Category          string
	GameStatus        GameStatus
	RoomStatus        RoomStatus
	PasswordHash      []byte
	TimerEnabled      bool
	TimerDuration     *int
	GameHost          string
	CurrentQuestionID int
	// Per display name, in submission order.
	PlayerAnswers map[string][]bool
}

func (r Room) IsPrivate() bool {
	return r.RoomStatus == RoomPrivate
}

// Clone returns a copy that shares no mutable state with r.
func (r Room) Clone() Room {
	c := r
	if r.PasswordHash != nil {
		c.PasswordHash = append([]byte(nil), r.PasswordHash...)
	}
	if r.TimerDuration != nil {
		d := *r.TimerDuration
		c.TimerDuration = &d
	}
	c.PlayerAnswers = make(map[string][]bool, len(r.PlayerAnswers))
	for name, answers := range r.PlayerAnswers {
		c.PlayerAnswers[name] = append([]bool(nil), answers...)
	}
	return c
}

// RoomPatch carries a partial update. Nil fields are left untouched.
type RoomPatch struct {
	CurrentQuestion   *int
	GameStatus        *GameStatus
	GameHost          *string
	CurrentQuestionID *int
	// Replaces the whole answer log when non-nil.
	PlayerAnswers map[string][]bool
}

func (r Room) Apply(p RoomPatch) Room {
	if p.CurrentQuestion != nil {
		r.CurrentQuestion = *p.CurrentQuestion
	}
	if p.GameStatus != nil {
		r.GameStatus = *p.GameStatus
	}
	if p.GameHost != nil {
		r.GameHost = *p.GameHost
	}
	if p.CurrentQuestionID != nil {
		r.CurrentQuestionID = *p.CurrentQuestionID
	}
	if p.PlayerAnswers != nil {
		r.PlayerAnswers = p.PlayerAnswers
	}
	return r
}
