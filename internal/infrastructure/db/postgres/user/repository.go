package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.Repository {
	return &Repository{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}

// Create relies on the unique index on email to reject duplicates that
// slipped past the uniqueness check.
func (r *Repository) Create(ctx context.Context, nu user.NewUser) (*user.User, error) {
	m := toDBModel(nu)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, apperror.DuplicateResource(user.FieldEmail)
		}
		return nil, apperror.Server(fmt.Errorf("insert user: %w", err))
	}

	u, err := fromDBModel(m)
	if err != nil {
		return nil, apperror.Server(err)
	}
	return u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Server(fmt.Errorf("select user by email: %w", err))
	}

	u, err := fromDBModel(&m)
	if err != nil {
		return nil, apperror.Server(err)
	}
	return u, nil
}

func (r *Repository) List(ctx context.Context) (user.Users, error) {
	var ms Users
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&ms).Error; err != nil {
		return nil, apperror.Server(fmt.Errorf("select users: %w", err))
	}

	us, err := fromDBModels(ms)
	if err != nil {
		return nil, apperror.Server(err)
	}
	return us, nil
}
