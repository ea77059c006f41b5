// Package memory is an in-process user store for tests and local runs.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   []*user.User
	byEmail map[string]*user.User
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*user.User),
		now:     time.Now,
	}
}

var _ user.Repository = (*UserRepository)(nil)

// Create enforces e-mail uniqueness under the write lock.
func (r *UserRepository) Create(ctx context.Context, nu user.NewUser) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Server(err)
	}

	key := emailKey(nu.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return nil, apperror.DuplicateResource(user.FieldEmail)
	}

	now := r.now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Name:         nu.Name,
		Email:        nu.Email,
		Phone:        nu.Phone,
		Birthdate:    nu.Birthdate,
		AvatarURL:    user.DefaultAvatarURL,
		Role:         user.RoleCustomer,
		PasswordHash: nu.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users = append(r.users, u)
	r.byEmail[key] = u

	cp := *u
	return &cp, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Server(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) List(ctx context.Context) (user.Users, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Server(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(user.Users, len(r.users))
	for i, u := range r.users {
		cp := *u
		out[i] = &cp
	}
	return out, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
