package usecase_room

import (
	"errors"
	"log/slog"
	"time"

	"github.com/humanbelnik/quizroom/core/internal/model"
	storage_session "github.com/humanbelnik/quizroom/core/internal/storage/session"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("wrong room password")
	ErrInvalidSettings = errors.New("invalid room settings")
	ErrInternal        = errors.New("internal error")
)

// Transport delivers events to connections and manages their room subscriptions.
//
//go:generate mockery --name=Transport --output=./mocks/transport --filename=transport.go
type Transport interface {
	JoinRoom(connID, room string)
	LeaveRoom(connID, room string)
	Emit(connID, event string, payload any)
	EmitToRoom(room, event string, payload any)
	EmitToOthers(connID, room, event string, payload any)
	EmitAll(event string, payload any)
	Disconnect(connID string)
}

type Settings struct {
	Name          string
	QuestionCount int
	Category      string
	TimerEnabled  bool
	TimerDuration int
	Private       bool
	Password      string
}

type Usecase struct {
	registry  *storage_session.Registry
	transport Transport
	logger    *slog.Logger
	now       func() time.Time
}

func New(
	registry *storage_session.Registry,
	transport Transport,
) *Usecase {
	return &Usecase{
		registry:  registry,
		transport: transport,
		logger:    slog.Default(),
		now:       time.Now,
	}
}

// Build validates settings and returns a fresh room hosted by host.
// Nothing is stored.
func (u *Usecase) Build(settings Settings, host string) (model.Room, error) {
	if settings.Name == "" || settings.QuestionCount < 0 {
		return model.Room{}, ErrInvalidSettings
	}
	if settings.TimerEnabled && settings.TimerDuration <= 0 {
		return model.Room{}, ErrInvalidSettings
	}

	room := model.Room{
		Name:          settings.Name,
		QuestionCount: settings.QuestionCount,
		Category:      settings.Category,
		GameStatus:    model.GameOpen,
		RoomStatus:    model.RoomOpen,
		TimerEnabled:  settings.TimerEnabled,
		GameHost:      host,
		PlayerAnswers: make(map[string][]bool),
	}

	if settings.TimerEnabled {
		d := settings.TimerDuration
		room.TimerDuration = &d
	}

	if settings.Private {
		hash, err := bcrypt.GenerateFromPassword([]byte(settings.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.Room{}, errors.Join(ErrInternal, err)
		}
		room.RoomStatus = model.RoomPrivate
		room.PasswordHash = hash
	}

	return room, nil
}

// Create stores a new room. A live room with the same name is replaced,
// its members stay attached to the name and see the new room's state.
// Callers hold the room lock.
func (u *Usecase) Create(settings Settings, host string) (model.Room, error) {
	room, err := u.Build(settings, host)
	if err != nil {
		return model.Room{}, err
	}
	u.Store(room)
	return room, nil
}

// Store puts a room built by Build into the registry, replacing any namesake.
// Callers hold the room lock.
func (u *Usecase) Store(room model.Room) {
	if _, exists := u.registry.GetRoom(room.Name); exists {
		u.logger.Warn("replacing live room", "room", room.Name, "host", room.GameHost)
	}
	u.registry.PutRoom(room)
	u.logger.Info("room created", "room", room.Name, "host", room.GameHost, "private", room.IsPrivate())
}

func (u *Usecase) Get(name string) (model.Room, error) {
	room, ok := u.registry.GetRoom(name)
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	return room, nil
}

// Update merges patch into the stored room. Every in-game room mutation goes through it.
// Callers hold the room lock.
func (u *Usecase) Update(name string, patch model.RoomPatch) (model.Room, error) {
	room, ok := u.registry.GetRoom(name)
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	room = room.Apply(patch)
	u.registry.PutRoom(room)
	return room, nil
}

func (u *Usecase) CheckPassword(room model.Room, password string) error {
	if !room.IsPrivate() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(room.PasswordHash, []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// OnMemberDeparture runs after departed has been removed from name.
// An empty room is destroyed, otherwise a departed host hands over to the earliest joined member.
// Callers hold the room lock.
func (u *Usecase) OnMemberDeparture(name, departed string) {
	room, ok := u.registry.GetRoom(name)
	if !ok {
		u.logger.Warn("departure from missing room", "room", name, "user", departed)
		return
	}

	members := u.registry.UsersInRoom(name)
	if len(members) == 0 {
		u.registry.RemoveRoom(name)
		u.logger.Info("room destroyed", "room", name)
		return
	}

	if room.GameHost != departed {
		return
	}
	for _, m := range members {
		if m.Name == departed {
			// Same account still present on another connection.
			return
		}
	}

	host := members[0].Name
	room, err := u.Update(name, model.RoomPatch{GameHost: &host})
	if err != nil {
		return
	}
	u.logger.Info("host migrated", "room", name, "from", departed, "to", room.GameHost)

	u.transport.EmitToRoom(name, model.EventNewHost, model.NewHostPayload{
		GameHost:   room.GameHost,
		GameStatus: room.GameStatus,
	})
}

func (u *Usecase) List() model.RoomListPayload {
	rooms := u.registry.AllRooms()
	views := make([]model.RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, model.RoomView{
			Name:          r.Name,
			QuestionCount: r.QuestionCount,
			Category:      r.Category,
			GameStatus:    r.GameStatus,
			RoomStatus:    r.RoomStatus,
			TimerEnabled:  r.TimerEnabled,
			TimerDuration: r.TimerDuration,
			GameHost:      r.GameHost,
			Players:       len(u.registry.UsersInRoom(r.Name)),
		})
	}
	return model.RoomListPayload{Rooms: views}
}

func (u *Usecase) BroadcastRoomList() {
	u.transport.EmitAll(model.EventRoomList, u.List())
}

func (u *Usecase) UserList(name string) model.UserListPayload {
	members := u.registry.UsersInRoom(name)
	views := make([]model.UserView, 0, len(members))
	for _, m := range members {
		views = append(views, model.UserView{Name: m.Name, Score: m.Score})
	}
	return model.UserListPayload{Users: views}
}

func (u *Usecase) BroadcastUserList(name string) {
	u.transport.EmitToRoom(name, model.EventUserList, u.UserList(name))
}

// Announce sends an admin chat line to the whole room.
func (u *Usecase) Announce(name, text string) {
	u.transport.EmitToRoom(name, model.EventMessage, model.NewChatMessage(model.AdminName, text, u.now()))
}

// Tell sends an admin chat line to one connection.
func (u *Usecase) Tell(connID, text string) {
	u.transport.Emit(connID, model.EventMessage, model.NewChatMessage(model.AdminName, text, u.now()))
}
