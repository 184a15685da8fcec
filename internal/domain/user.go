package domain

import (
	"time"
)

// User represents an account in the system. Users are created through the
// auth service and are only referenced (never mutated) by the workout and
// partner services.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Username     string    `bson:"username" json:"username"` // Should be unique
	Email        string    `bson:"email" json:"email"`       // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the part of a user that other users are allowed to see.
type PublicProfile struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Username string `bson:"username" json:"username"`
}

// Profile returns the public view of the user.
func (u *User) Profile() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, Username: u.Username}
}
