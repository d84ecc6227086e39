package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a patient. Registration and login are handled by another service.
type User struct {
	id        uuid.UUID
	name      string
	email     Email
	phone     string
	createdAt time.Time
}

func NewUser(name string, email Email, phone string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &User{
		id:    uuid.New(),
		name:  name,
		email: email,
		phone: phone,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email, phone string, createdAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		createdAt: createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Snapshot is the copy embedded into appointments at booking time.
type Snapshot struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:    u.id,
		Name:  u.name,
		Email: u.email.Value(),
		Phone: u.phone,
	}
}
