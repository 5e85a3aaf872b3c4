package usecase_room

import (
	"testing"

	"github.com/humanbelnik/quizroom/core/internal/model"
	storage_session "github.com/humanbelnik/quizroom/core/internal/storage/session"
	transport_mocks "github.com/humanbelnik/quizroom/core/internal/usecase/room/mocks/transport"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseRoomUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase   *Usecase
	registry  *storage_session.Registry
	transport *transport_mocks.Transport
}

func initResources(t provider.T) *resources {
	registry := storage_session.New()
	transport := transport_mocks.NewTransport(t)

	return &resources{
		usecase:   New(registry, transport),
		registry:  registry,
		transport: transport,
	}
}

func allowEmits(tr *transport_mocks.Transport) {
	tr.On("EmitToRoom", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	tr.On("EmitAll", mock.Anything, mock.Anything).Return().Maybe()
	tr.On("Emit", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
}

func validSettings() Settings {
	return Settings{
		Name:          "trivia",
		QuestionCount: 3,
		Category:      "geography",
	}
}

func member(r *resources, connID, name, room string) {
	r.registry.PutUser(model.User{ConnID: connID, Name: name, Room: room})
}

func (suite *UsecaseRoomUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		settings      func() Settings
		expectedError error
		check         func(t provider.T, room model.Room)
	}{
		{
			name:     "Should create open room",
			settings: validSettings,
			check: func(t provider.T, room model.Room) {
				assert.Equal(t, model.GameOpen, room.GameStatus)
				assert.Equal(t, model.RoomOpen, room.RoomStatus)
				assert.Equal(t, 0, room.CurrentQuestion)
				assert.Equal(t, "alice", room.GameHost)
				assert.Nil(t, room.TimerDuration)
				assert.Empty(t, room.PlayerAnswers)
			},
		},
		{
			name: "Should keep timer when enabled",
			settings: func() Settings {
				s := validSettings()
				s.TimerEnabled = true
				s.TimerDuration = 15
				return s
			},
			check: func(t provider.T, room model.Room) {
				require.NotNil(t, room.TimerDuration)
				assert.Equal(t, 15, *room.TimerDuration)
			},
		},
		{
			name: "Should hash password of private room",
			settings: func() Settings {
				s := validSettings()
				s.Private = true
				s.Password = "secret"
				return s
			},
			check: func(t provider.T, room model.Room) {
				assert.Equal(t, model.RoomPrivate, room.RoomStatus)
				assert.NotEqual(t, []byte("secret"), room.PasswordHash)
				assert.NotEmpty(t, room.PasswordHash)
			},
		},
		{
			name: "Should reject empty name",
			settings: func() Settings {
				s := validSettings()
				s.Name = ""
				return s
			},
			expectedError: ErrInvalidSettings,
		},
		{
			name: "Should reject negative question count",
			settings: func() Settings {
				s := validSettings()
				s.QuestionCount = -1
				return s
			},
			expectedError: ErrInvalidSettings,
		},
		{
			name: "Should reject enabled timer without duration",
			settings: func() Settings {
				s := validSettings()
				s.TimerEnabled = true
				return s
			},
			expectedError: ErrInvalidSettings,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			room, err := r.usecase.Create(tc.settings(), "alice")

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, r.registry.AllRooms())
				return
			}
			require.NoError(t, err)
			stored, ok := r.registry.GetRoom(room.Name)
			require.True(t, ok)
			tc.check(t, stored)
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestCreateReplacesLiveRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	_, err := r.usecase.Create(validSettings(), "alice")
	require.NoError(t, err)
	member(r, "1", "alice", "trivia")
	active, current := model.GameActive, 2
	_, err = r.usecase.Update("trivia", model.RoomPatch{
		GameStatus:      &active,
		CurrentQuestion: &current,
		PlayerAnswers:   map[string][]bool{"alice": {true, false}},
	})
	require.NoError(t, err)

	s := validSettings()
	s.QuestionCount = 7
	_, err = r.usecase.Create(s, "bob")
	require.NoError(t, err)

	room, err := r.usecase.Get("trivia")
	require.NoError(t, err)
	assert.Equal(t, model.GameOpen, room.GameStatus)
	assert.Equal(t, 7, room.QuestionCount)
	assert.Equal(t, "bob", room.GameHost)
	assert.Equal(t, 0, room.CurrentQuestion)
	assert.Empty(t, room.PlayerAnswers)
	assert.Len(t, r.registry.AllRooms(), 1)
	// Previous members stay attached to the name.
	assert.Len(t, r.registry.UsersInRoom("trivia"), 1)
}

func (suite *UsecaseRoomUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()
	r := initResources(t)

	_, err := r.usecase.Update("missing", model.RoomPatch{})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = r.usecase.Create(validSettings(), "alice")
	require.NoError(t, err)

	q := 2
	room, err := r.usecase.Update("trivia", model.RoomPatch{CurrentQuestion: &q})
	require.NoError(t, err)
	assert.Equal(t, 2, room.CurrentQuestion)
	assert.Equal(t, model.GameOpen, room.GameStatus)
	assert.Equal(t, "alice", room.GameHost)

	room, err = r.usecase.Update("trivia", model.RoomPatch{PlayerAnswers: map[string][]bool{"alice": {true}}})
	require.NoError(t, err)
	assert.Equal(t, 2, room.CurrentQuestion)
	stored, err := r.usecase.Get("trivia")
	require.NoError(t, err)
	assert.Equal(t, map[string][]bool{"alice": {true}}, stored.PlayerAnswers)
}

func (suite *UsecaseRoomUnitSuite) TestCheckPassword(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		private       bool
		password      string
		expectedError error
	}{
		{name: "Should pass open room", private: false, password: "whatever"},
		{name: "Should pass right password", private: true, password: "secret"},
		{name: "Should fail wrong password", private: true, password: "guess", expectedError: ErrWrongPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			s := validSettings()
			s.Private = tc.private
			s.Password = "secret"
			room, err := r.usecase.Build(s, "alice")
			require.NoError(t, err)

			err = r.usecase.CheckPassword(room, tc.password)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (suite *UsecaseRoomUnitSuite) TestHostMigrationChain(t provider.T) {
	t.Parallel()
	r := initResources(t)
	r.transport.On("EmitToRoom", "trivia", model.EventNewHost, model.NewHostPayload{
		GameHost: "bob", GameStatus: model.GameOpen,
	}).Return().Once()
	r.transport.On("EmitToRoom", "trivia", model.EventNewHost, model.NewHostPayload{
		GameHost: "carol", GameStatus: model.GameOpen,
	}).Return().Once()

	_, err := r.usecase.Create(validSettings(), "alice")
	require.NoError(t, err)
	member(r, "1", "alice", "trivia")
	member(r, "2", "bob", "trivia")
	member(r, "3", "carol", "trivia")

	r.registry.RemoveUser("1")
	r.usecase.OnMemberDeparture("trivia", "alice")
	room, err := r.usecase.Get("trivia")
	require.NoError(t, err)
	assert.Equal(t, "bob", room.GameHost)

	r.registry.RemoveUser("2")
	r.usecase.OnMemberDeparture("trivia", "bob")
	room, err = r.usecase.Get("trivia")
	require.NoError(t, err)
	assert.Equal(t, "carol", room.GameHost)

	r.registry.RemoveUser("3")
	r.usecase.OnMemberDeparture("trivia", "carol")
	_, err = r.usecase.Get("trivia")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func (suite *UsecaseRoomUnitSuite) TestDepartureOfNonHost(t provider.T) {
	t.Parallel()
	r := initResources(t)

	_, err := r.usecase.Create(validSettings(), "alice")
	require.NoError(t, err)
	member(r, "1", "alice", "trivia")
	member(r, "2", "bob", "trivia")

	r.registry.RemoveUser("2")
	r.usecase.OnMemberDeparture("trivia", "bob")

	room, err := r.usecase.Get("trivia")
	require.NoError(t, err)
	assert.Equal(t, "alice", room.GameHost)
	r.transport.AssertNotCalled(t, "EmitToRoom", "trivia", model.EventNewHost, mock.Anything)
}

func (suite *UsecaseRoomUnitSuite) TestDepartureFromMissingRoom(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.usecase.OnMemberDeparture("missing", "alice")
	assert.Empty(t, r.registry.AllRooms())
}

func (suite *UsecaseRoomUnitSuite) TestList(t provider.T) {
	t.Parallel()
	r := initResources(t)
	allowEmits(r.transport)

	_, err := r.usecase.Create(validSettings(), "alice")
	require.NoError(t, err)
	s := validSettings()
	s.Name = "history"
	_, err = r.usecase.Create(s, "bob")
	require.NoError(t, err)
	member(r, "1", "alice", "trivia")
	member(r, "2", "carl", "trivia")

	list := r.usecase.List()
	require.Len(t, list.Rooms, 2)
	assert.Equal(t, "trivia", list.Rooms[0].Name)
	assert.Equal(t, 2, list.Rooms[0].Players)
	assert.Equal(t, "history", list.Rooms[1].Name)
	assert.Equal(t, 0, list.Rooms[1].Players)

	r.usecase.BroadcastRoomList()
	r.transport.AssertCalled(t, "EmitAll", model.EventRoomList, list)

	r.usecase.BroadcastUserList("trivia")
	r.transport.AssertCalled(t, "EmitToRoom", "trivia", model.EventUserList, model.UserListPayload{
		Users: []model.UserView{{Name: "alice"}, {Name: "carl"}},
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoomUnitSuite))
}
