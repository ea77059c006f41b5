package user

import (
	"context"
)

// Repository owns user storage. Implementations assign the ID, the default
// role and avatar and the timestamps on Create. FindByEmail returns
// (nil, nil) when no user matches; e-mail lookups are case-insensitive.
type Repository interface {
	Create(ctx context.Context, u NewUser) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) (Users, error)
}
