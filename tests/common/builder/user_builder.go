//go:build unit || integration

package builder

import (
	"time"

	"doctor-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        uuid.New(),
		Name:      "Jane Patient",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() *user.User {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		panic(err)
	}
	return user.ReconstructUser(u.ID, u.Name, email, u.Phone, u.CreatedAt)
}
