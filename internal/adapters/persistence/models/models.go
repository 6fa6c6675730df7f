package models

import (
	"encoding/json"
	"time"

	"betamoney/internal/core/domain"
)

// User represents users table / collection
type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Email     string    `gorm:"size:100;not null" bson:"email" json:"email"`
	Name      string    `gorm:"size:100;not null" bson:"name" json:"name"`
	Role      string    `gorm:"size:20;not null" bson:"role" json:"role"`
	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the user holds the treasurer role
func (u *User) IsOwner() bool {
	return domain.Role(u.Role) == domain.RoleOwner
}

// Request represents requests table / collection.
// ImageURL is opaque at this level: either a data URI with the encoded
// receipt inline, or a URL into object storage.
type Request struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID      string    `gorm:"index;size:36;not null" bson:"user_id" json:"user_id"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" bson:"amount" json:"amount"`
	Description string    `gorm:"type:text;not null" bson:"description" json:"description"`
	Category    string    `gorm:"size:50" bson:"category" json:"category,omitempty"`
	Status      string    `gorm:"size:20;not null;index" bson:"status" json:"status"`
	ImageURL    string    `gorm:"type:longtext" bson:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"not null" bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false" bson:"updated_at" json:"updated_at"`
}

func (Request) TableName() string {
	return "requests"
}

// Session represents the single current-session record. The signed-in
// user is kept serialized, the way the original localStorage record was.
type Session struct {
	ID        uint      `gorm:"primaryKey" bson:"-" json:"-"`
	Data      string    `gorm:"type:text" bson:"data" json:"data"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// CurrentSessionID is the fixed key of the single session record
const CurrentSessionID uint = 1

// EncodeSessionUser serializes a user for session storage
func EncodeSessionUser(u *User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSessionUser deserializes a session record back into a user.
// Corrupt data yields an error; callers decide whether to surface it.
func DecodeSessionUser(data string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
