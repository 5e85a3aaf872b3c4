package storage_session

import (
	"sort"
	"sync"

	"github.com/humanbelnik/quizroom/core/internal/model"
)

type userEntry struct {
	user model.User
	// Order in which the user entered its current room.
	seq uint64
}

type roomEntry struct {
	room model.Room
	seq  uint64
}

// Registry holds every connected user and every live room.
// Values go in and come out as copies, callers never share state with the tables.
type Registry struct {
	usersMu sync.RWMutex
	users   map[string]userEntry

	roomsMu sync.RWMutex
	rooms   map[string]roomEntry

	seqMu sync.Mutex
	seq   uint64

	locks *roomLocks
}

func New() *Registry {
	return &Registry{
		users: make(map[string]userEntry),
		rooms: make(map[string]roomEntry),
		locks: newRoomLocks(),
	}
}

func (r *Registry) next() uint64 {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	r.seq++
	return r.seq
}

// PutUser inserts or replaces the user keyed by its connection id.
// Moving to another room puts the user at the end of that room's join order.
func (r *Registry) PutUser(u model.User) {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()

	prev, ok := r.users[u.ConnID]
	seq := prev.seq
	if !ok || prev.user.Room != u.Room {
		seq = r.next()
	}
	r.users[u.ConnID] = userEntry{user: u, seq: seq}
}

func (r *Registry) RemoveUser(connID string) {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()
	delete(r.users, connID)
}

func (r *Registry) GetUser(connID string) (model.User, bool) {
	r.usersMu.RLock()
	defer r.usersMu.RUnlock()
	e, ok := r.users[connID]
	return e.user, ok
}

// UsersInRoom returns the members of room, earliest joined first.
func (r *Registry) UsersInRoom(room string) []model.User {
	r.usersMu.RLock()
	entries := make([]userEntry, 0)
	for _, e := range r.users {
		if e.user.Room == room {
			entries = append(entries, e)
		}
	}
	r.usersMu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	users := make([]model.User, 0, len(entries))
	for _, e := range entries {
		users = append(users, e.user)
	}
	return users
}

// HaveAllAnswered reports whether every member of room has answered the current question.
func (r *Registry) HaveAllAnswered(room string) bool {
	r.usersMu.RLock()
	defer r.usersMu.RUnlock()
	for _, e := range r.users {
		if e.user.Room == room && !e.user.Answered {
			return false
		}
	}
	return true
}

// PutRoom upserts by name. An existing room is replaced wholesale.
func (r *Registry) PutRoom(room model.Room) {
	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()

	seq := r.rooms[room.Name].seq
	if seq == 0 {
		seq = r.next()
	}
	r.rooms[room.Name] = roomEntry{room: room.Clone(), seq: seq}
}

func (r *Registry) RemoveRoom(name string) {
	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()
	delete(r.rooms, name)
}

func (r *Registry) GetRoom(name string) (model.Room, bool) {
	r.roomsMu.RLock()
	defer r.roomsMu.RUnlock()
	e, ok := r.rooms[name]
	if !ok {
		return model.Room{}, false
	}
	return e.room.Clone(), true
}

// AllRooms returns every live room in creation order.
func (r *Registry) AllRooms() []model.Room {
	r.roomsMu.RLock()
	entries := make([]roomEntry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, e)
	}
	r.roomsMu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	rooms := make([]model.Room, 0, len(entries))
	for _, e := range entries {
		rooms = append(rooms, e.room.Clone())
	}
	return rooms
}

// Lock serializes mutations of the named rooms. Empty names are ignored.
// The returned func releases every lock taken.
func (r *Registry) Lock(names ...string) (unlock func()) {
	return r.locks.acquire(names...)
}
