package usecase_presence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/humanbelnik/quizroom/core/internal/model"
	storage_session "github.com/humanbelnik/quizroom/core/internal/storage/session"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
)

var (
	ErrAuth         = errors.New("authentication failed")
	ErrUserNotFound = usecase_room.ErrUserNotFound
)

//go:generate mockery --name=Authenticator --output=./mocks/authenticator --filename=authenticator.go
type Authenticator interface {
	// Verify returns the display name carried by token.
	Verify(ctx context.Context, token string) (string, error)
}

type Usecase struct {
	registry  *storage_session.Registry
	rooms     *usecase_room.Usecase
	transport usecase_room.Transport
	auth      Authenticator
	logger    *slog.Logger
	now       func() time.Time
}

func New(
	registry *storage_session.Registry,
	rooms *usecase_room.Usecase,
	transport usecase_room.Transport,
	auth Authenticator,
) *Usecase {
	return &Usecase{
		registry:  registry,
		rooms:     rooms,
		transport: transport,
		auth:      auth,
		logger:    slog.Default(),
		now:       time.Now,
	}
}

// Join moves the connection into an existing room.
func (u *Usecase) Join(ctx context.Context, connID, token, roomName, password string) error {
	name, err := u.verify(ctx, token)
	if err != nil {
		return err
	}

	return u.enter(connID, name, roomName, func() (model.Room, bool, error) {
		room, err := u.rooms.Get(roomName)
		if err != nil {
			return model.Room{}, false, err
		}
		if err := u.rooms.CheckPassword(room, password); err != nil {
			return model.Room{}, false, err
		}
		return room, false, nil
	})
}

// CreateAndJoin creates the room with the caller as host and moves the connection into it.
func (u *Usecase) CreateAndJoin(ctx context.Context, connID, token string, settings usecase_room.Settings) error {
	name, err := u.verify(ctx, token)
	if err != nil {
		return err
	}

	return u.enter(connID, name, settings.Name, func() (model.Room, bool, error) {
		room, err := u.rooms.Build(settings, name)
		if err != nil {
			return model.Room{}, false, err
		}
		return room, true, nil
	})
}

func (u *Usecase) verify(ctx context.Context, token string) (string, error) {
	name, err := u.auth.Verify(ctx, token)
	if err != nil {
		return "", errors.Join(ErrAuth, err)
	}
	return name, nil
}

// enter runs prepare before touching anything, so a rejected join
// leaves both the old and the new room as they were.
func (u *Usecase) enter(connID, name, roomName string, prepare func() (room model.Room, create bool, err error)) error {
	prevRoom := ""
	if prev, ok := u.registry.GetUser(connID); ok {
		prevRoom = prev.Room
	}

	unlock := u.registry.Lock(prevRoom, roomName)
	defer unlock()

	room, create, err := prepare()
	if err != nil {
		return err
	}

	// Re-entering or re-creating the room the user is in is not a departure.
	if prevRoom != "" && prevRoom != roomName {
		u.depart(connID, prevRoom)
	}
	if create {
		u.rooms.Store(room)
	}

	u.registry.PutUser(model.User{
		ConnID: connID,
		Name:   name,
		Room:   roomName,
	})
	u.transport.JoinRoom(connID, roomName)

	u.logger.Info("user joined", "user", name, "room", roomName, "conn", connID)

	u.transport.Emit(connID, model.EventUserJoinedRoom, model.UserJoinedRoomPayload{
		RoomName: roomName,
		RoomHost: room.GameHost,
	})
	u.rooms.Tell(connID, fmt.Sprintf("You have joined the %s chat room", roomName))
	u.transport.EmitToOthers(connID, roomName, model.EventMessage,
		model.NewChatMessage(model.AdminName, fmt.Sprintf("%s has joined the room", name), u.now()))
	u.rooms.BroadcastUserList(roomName)
	u.rooms.BroadcastRoomList()
	return nil
}

// LeaveRoom takes the connection out of its room. The connection stays open.
func (u *Usecase) LeaveRoom(connID string) error {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return ErrUserNotFound
	}

	unlock := u.registry.Lock(user.Room)
	defer unlock()

	u.depart(connID, user.Room)
	u.rooms.Tell(connID, "You have left the room")
	u.transport.Emit(connID, model.EventLeftRoom, nil)
	u.rooms.BroadcastRoomList()
	return nil
}

// LeaveApp drops every trace of a closed connection.
func (u *Usecase) LeaveApp(connID string) {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return
	}

	unlock := u.registry.Lock(user.Room)
	defer unlock()

	u.depart(connID, user.Room)
	u.rooms.BroadcastRoomList()
	u.logger.Info("user disconnected", "user", user.Name, "conn", connID)
}

// depart removes the user record and applies the room side effects.
// Callers hold the lock of room.
func (u *Usecase) depart(connID, room string) {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return
	}

	u.registry.RemoveUser(connID)
	u.transport.LeaveRoom(connID, room)
	u.logger.Info("user left", "user", user.Name, "room", room)

	u.rooms.Announce(room, fmt.Sprintf("%s has left the room", user.Name))
	u.rooms.BroadcastUserList(room)
	u.rooms.OnMemberDeparture(room, user.Name)
}

// Message relays a chat line from the connection to its room.
func (u *Usecase) Message(connID, text string) error {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return ErrUserNotFound
	}
	u.transport.EmitToRoom(user.Room, model.EventMessage, model.NewChatMessage(user.Name, text, u.now()))
	return nil
}

// Activity tells the rest of the room that the connection is typing.
func (u *Usecase) Activity(connID string) error {
	user, ok := u.registry.GetUser(connID)
	if !ok {
		return ErrUserNotFound
	}
	u.transport.EmitToOthers(connID, user.Room, model.EventActivity, user.Name)
	return nil
}
