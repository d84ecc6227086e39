package queries

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock

import (
	"context"
	"log/slog"

	"doctor-booking/internal/infra"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	Profile(ctx context.Context, userID uuid.UUID) (*UserProfileView, error)
}

type userQueriesImpl struct {
	users  UserReadStore
	cache  shared.Cache
	logger *slog.Logger
	ttls   CacheTTLs
}

func NewUserQueries(users UserReadStore, cache shared.Cache, logger *slog.Logger, ttls CacheTTLs) UserQueries {
	return &userQueriesImpl{users: users, cache: cache, logger: logger, ttls: ttls}
}

func (q *userQueriesImpl) Profile(ctx context.Context, userID uuid.UUID) (*UserProfileView, error) {
	return readThrough(ctx, q.cache, q.logger, shared.UserProfileKey(userID), q.ttls.Profile,
		func(ctx context.Context) (*UserProfileView, error) {
			u, err := q.users.FindByID(ctx, userID)
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrUserNotFound
			}
			if err != nil {
				return nil, err
			}
			v := toUserProfileView(u)
			return &v, nil
		})
}
