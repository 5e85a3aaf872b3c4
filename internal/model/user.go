package model

// User is a connection that has entered a room.
type User struct {
	ConnID   string
	Name     string
	Room     string
	Answered bool
	Score    int
}
