package usecase_presence

import (
	"context"
	"errors"
	"testing"

	"github.com/humanbelnik/quizroom/core/internal/model"
	storage_session "github.com/humanbelnik/quizroom/core/internal/storage/session"
	auth_mocks "github.com/humanbelnik/quizroom/core/internal/usecase/presence/mocks/authenticator"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
	transport_mocks "github.com/humanbelnik/quizroom/core/internal/usecase/room/mocks/transport"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecasePresenceUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase   *Usecase
	rooms     *usecase_room.Usecase
	registry  *storage_session.Registry
	transport *transport_mocks.Transport
	auth      *auth_mocks.Authenticator
	ctx       context.Context
}

func initResources(t provider.T) *resources {
	registry := storage_session.New()
	transport := transport_mocks.NewTransport(t)
	auth := auth_mocks.NewAuthenticator(t)
	rooms := usecase_room.New(registry, transport)

	transport.On("JoinRoom", mock.Anything, mock.Anything).Return().Maybe()
	transport.On("LeaveRoom", mock.Anything, mock.Anything).Return().Maybe()
	transport.On("Emit", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	transport.On("EmitToRoom", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	transport.On("EmitToOthers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	transport.On("EmitAll", mock.Anything, mock.Anything).Return().Maybe()

	auth.On("Verify", mock.Anything, "tok-alice").Return("alice", nil).Maybe()
	auth.On("Verify", mock.Anything, "tok-bob").Return("bob", nil).Maybe()
	auth.On("Verify", mock.Anything, "tok-carol").Return("carol", nil).Maybe()
	auth.On("Verify", mock.Anything, "forged").Return("", errors.New("signature is invalid")).Maybe()

	return &resources{
		usecase:   New(registry, rooms, transport, auth),
		rooms:     rooms,
		registry:  registry,
		transport: transport,
		auth:      auth,
		ctx:       context.Background(),
	}
}

func settings(name string) usecase_room.Settings {
	return usecase_room.Settings{
		Name:          name,
		QuestionCount: 3,
		Category:      "geography",
	}
}

func (r *resources) create(t provider.T, connID, token, room string) {
	require.NoError(t, r.usecase.CreateAndJoin(r.ctx, connID, token, settings(room)))
}

func (r *resources) join(t provider.T, connID, token, room string) {
	require.NoError(t, r.usecase.Join(r.ctx, connID, token, room, ""))
}

func memberNames(r *resources, room string) []string {
	out := make([]string, 0)
	for _, u := range r.registry.UsersInRoom(room) {
		out = append(out, u.Name)
	}
	return out
}

func (suite *UsecasePresenceUnitSuite) TestCreateAndJoin(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.create(t, "c1", "tok-alice", "trivia")

	room, ok := r.registry.GetRoom("trivia")
	require.True(t, ok)
	assert.Equal(t, "alice", room.GameHost)
	assert.Equal(t, model.GameOpen, room.GameStatus)

	user, ok := r.registry.GetUser("c1")
	require.True(t, ok)
	assert.Equal(t, model.User{ConnID: "c1", Name: "alice", Room: "trivia"}, user)

	r.transport.AssertCalled(t, "JoinRoom", "c1", "trivia")
	r.transport.AssertCalled(t, "Emit", "c1", model.EventUserJoinedRoom, model.UserJoinedRoomPayload{
		RoomName: "trivia",
		RoomHost: "alice",
	})
	r.transport.AssertCalled(t, "EmitToRoom", "trivia", model.EventUserList, model.UserListPayload{
		Users: []model.UserView{{Name: "alice"}},
	})
	r.transport.AssertCalled(t, "EmitAll", model.EventRoomList, mock.AnythingOfType("model.RoomListPayload"))
}

func (suite *UsecasePresenceUnitSuite) TestJoinFailures(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		token         string
		room          string
		password      string
		expectedError error
	}{
		{
			name:          "Should reject invalid token",
			token:         "forged",
			room:          "trivia",
			expectedError: ErrAuth,
		},
		{
			name:          "Should reject missing room",
			token:         "tok-bob",
			room:          "nowhere",
			expectedError: usecase_room.ErrRoomNotFound,
		},
		{
			name:          "Should reject wrong password",
			token:         "tok-bob",
			room:          "vault",
			password:      "guess",
			expectedError: usecase_room.ErrWrongPassword,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			r.create(t, "c1", "tok-alice", "trivia")
			s := settings("vault")
			s.Private = true
			s.Password = "secret"
			require.NoError(t, r.usecase.CreateAndJoin(r.ctx, "c3", "tok-carol", s))
			r.join(t, "c2", "tok-bob", "trivia")

			err := r.usecase.Join(r.ctx, "c2", tc.token, tc.room, tc.password)

			assert.ErrorIs(t, err, tc.expectedError)
			user, ok := r.registry.GetUser("c2")
			require.True(t, ok)
			assert.Equal(t, "trivia", user.Room)
			assert.Equal(t, []string{"alice", "bob"}, memberNames(r, "trivia"))
			assert.Equal(t, []string{"carol"}, memberNames(r, "vault"))
		})
	}
}

func (suite *UsecasePresenceUnitSuite) TestJoinPrivateRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	s := settings("vault")
	s.Private = true
	s.Password = "secret"
	require.NoError(t, r.usecase.CreateAndJoin(r.ctx, "c1", "tok-alice", s))

	require.NoError(t, r.usecase.Join(r.ctx, "c2", "tok-bob", "vault", "secret"))
	assert.Equal(t, []string{"alice", "bob"}, memberNames(r, "vault"))
}

func (suite *UsecasePresenceUnitSuite) TestCreateAuthFailure(t provider.T) {
	t.Parallel()
	r := initResources(t)

	err := r.usecase.CreateAndJoin(r.ctx, "c1", "forged", settings("trivia"))

	assert.ErrorIs(t, err, ErrAuth)
	assert.Empty(t, r.registry.AllRooms())
	_, ok := r.registry.GetUser("c1")
	assert.False(t, ok)
}

func (suite *UsecasePresenceUnitSuite) TestSwitchRooms(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.create(t, "c1", "tok-alice", "trivia")
	r.join(t, "c2", "tok-bob", "trivia")
	r.create(t, "c3", "tok-carol", "history")

	r.join(t, "c1", "tok-alice", "history")

	assert.Equal(t, []string{"bob"}, memberNames(r, "trivia"))
	assert.Equal(t, []string{"carol", "alice"}, memberNames(r, "history"))
	room, ok := r.registry.GetRoom("trivia")
	require.True(t, ok)
	assert.Equal(t, "bob", room.GameHost)

	r.transport.AssertCalled(t, "LeaveRoom", "c1", "trivia")
	r.transport.AssertCalled(t, "EmitToRoom", "trivia", model.EventNewHost, model.NewHostPayload{
		GameHost:   "bob",
		GameStatus: model.GameOpen,
	})
}

func (suite *UsecasePresenceUnitSuite) TestSwitchDestroysEmptyRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.create(t, "c1", "tok-alice", "trivia")
	r.create(t, "c1", "tok-alice", "history")

	_, ok := r.registry.GetRoom("trivia")
	assert.False(t, ok)
	assert.Equal(t, []string{"alice"}, memberNames(r, "history"))
}

func (suite *UsecasePresenceUnitSuite) TestReenterSameRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.create(t, "c1", "tok-alice", "trivia")
	r.join(t, "c1", "tok-alice", "trivia")

	room, ok := r.registry.GetRoom("trivia")
	require.True(t, ok)
	assert.Equal(t, "alice", room.GameHost)
	assert.Equal(t, []string{"alice"}, memberNames(r, "trivia"))
}

func (suite *UsecasePresenceUnitSuite) TestRecreateOwnRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.create(t, "c1", "tok-alice", "trivia")
	r.join(t, "c2", "tok-bob", "trivia")
	active := model.GameActive
	_, err := r.rooms.Update("trivia", model.RoomPatch{GameStatus: &active})
	require.NoError(t, err)

	s := settings("trivia")
	s.QuestionCount = 8
	require.NoError(t, r.usecase.CreateAndJoin(r.ctx, "c1", "tok-alice", s))

	room, ok := r.registry.GetRoom("trivia")
	require.True(t, ok)
	assert.Equal(t, "alice", room.GameHost)
	assert.Equal(t, model.GameOpen, room.GameStatus)
	assert.Equal(t, 8, room.QuestionCount)
	assert.Equal(t, []string{"alice", "bob"}, memberNames(r, "trivia"))
	r.transport.AssertNotCalled(t, "EmitToRoom", "trivia", model.EventNewHost, mock.Anything)
	r.transport.AssertNotCalled(t, "LeaveRoom", "c1", "trivia")
}

func (suite *UsecasePresenceUnitSuite) TestLeaveRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	assert.ErrorIs(t, r.usecase.LeaveRoom("ghost"), ErrUserNotFound)

	r.create(t, "c1", "tok-alice", "trivia")
	r.join(t, "c2", "tok-bob", "trivia")

	require.NoError(t, r.usecase.LeaveRoom("c1"))

	_, ok := r.registry.GetUser("c1")
	assert.False(t, ok)
	room, ok := r.registry.GetRoom("trivia")
	require.True(t, ok)
	assert.Equal(t, "bob", room.GameHost)
	r.transport.AssertCalled(t, "Emit", "c1", model.EventLeftRoom, nil)
	r.transport.AssertNotCalled(t, "Disconnect", mock.Anything)
}

func (suite *UsecasePresenceUnitSuite) TestLeaveApp(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.usecase.LeaveApp("ghost")

	r.create(t, "c1", "tok-alice", "trivia")
	r.join(t, "c2", "tok-bob", "trivia")
	r.join(t, "c3", "tok-carol", "trivia")

	r.usecase.LeaveApp("c1")
	room, _ := r.registry.GetRoom("trivia")
	assert.Equal(t, "bob", room.GameHost)

	r.usecase.LeaveApp("c2")
	room, _ = r.registry.GetRoom("trivia")
	assert.Equal(t, "carol", room.GameHost)

	r.usecase.LeaveApp("c3")
	_, ok := r.registry.GetRoom("trivia")
	assert.False(t, ok)
	assert.Empty(t, r.registry.AllRooms())
}

func (suite *UsecasePresenceUnitSuite) TestChat(t provider.T) {
	t.Parallel()
	r := initResources(t)

	assert.ErrorIs(t, r.usecase.Message("ghost", "hi"), ErrUserNotFound)
	assert.ErrorIs(t, r.usecase.Activity("ghost"), ErrUserNotFound)

	r.create(t, "c1", "tok-alice", "trivia")
	require.NoError(t, r.usecase.Message("c1", "hello"))
	require.NoError(t, r.usecase.Activity("c1"))

	r.transport.AssertCalled(t, "EmitToRoom", "trivia", model.EventMessage, mock.MatchedBy(func(m model.ChatMessage) bool {
		return m.Name == "alice" && m.Text == "hello"
	}))
	r.transport.AssertCalled(t, "EmitToOthers", "c1", "trivia", model.EventActivity, "alice")
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecasePresenceUnitSuite))
}
