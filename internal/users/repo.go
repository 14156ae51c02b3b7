package users

import "context"

type Repo interface {
	Create(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, profileID string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	Update(ctx context.Context, profile Profile) error
}
