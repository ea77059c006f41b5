package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/metrics"
)

// RedactedPlaceholder replaces secrets in log payloads.
const RedactedPlaceholder = "[REDACTED]"

type UserCreateService struct {
	sanitizer ports.Sanitizer
	validator ports.DataValidator
	hasher    ports.HashProvider
	users     user.Repository
	publisher ports.EventPublisher
	logger    ports.Logger
	mCounter  *prometheus.CounterVec
}

func NewUserCreateService(
	sanitizer ports.Sanitizer,
	validator ports.DataValidator,
	hasher ports.HashProvider,
	users user.Repository,
	publisher ports.EventPublisher,
	logger ports.Logger,
	mCounter *prometheus.CounterVec,
) ports.UserCreateService {
	return &UserCreateService{
		sanitizer: sanitizer,
		validator: validator,
		hasher:    hasher,
		users:     users,
		publisher: publisher,
		logger:    logger.WithContext(ports.Fields{"service": "UserCreateService"}),
		mCounter:  mCounter,
	}
}

// CreateUser runs sanitize, validate, hash and persist in that order. Any
// failure aborts before the repository is written and is returned as is.
func (s *UserCreateService) CreateUser(ctx context.Context, raw *user.CreateData) error {
	data := s.sanitizer.Sanitize(raw)
	s.logger.Debug("user data sanitized", ports.Fields{
		"name":      data.Name,
		"email":     data.Email,
		"phone":     data.Phone,
		"birthdate": data.Birthdate,
		"password":  RedactedPlaceholder,
	})

	if err := s.validator.Validate(ctx, data); err != nil {
		return s.fail(err)
	}

	hash, err := s.hasher.Hash(ctx, data.Password)
	if err != nil {
		return s.fail(err)
	}

	birthdate, err := user.ParseBirthdate(data.Birthdate)
	if err != nil {
		return s.fail(apperror.InvalidParam(user.FieldBirthdate, "Data inválida"))
	}

	u, err := s.users.Create(ctx, user.NewUser{
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Birthdate:    birthdate,
		PasswordHash: hash,
	})
	if err != nil {
		return s.fail(err)
	}

	s.inc(metrics.UserCreated)
	if u == nil {
		s.logger.Info("user created")
		return nil
	}

	s.logger.Info("user created", ports.Fields{"user_id": u.ID.String()})
	if s.publisher != nil {
		if ok := s.publisher.Publish(ports.UserEvent{
			ID:     uuid.New(),
			TS:     time.Now().UTC(),
			Action: ports.EventUserCreated,
			User:   u.Mapped(),
		}); !ok {
			s.logger.Warn("user created event dropped", ports.Fields{"user_id": u.ID.String()})
		}
	}

	return nil
}

func (s *UserCreateService) fail(err error) error {
	s.inc(metrics.UserCreateFailed)
	s.logger.Error("user creation failed", ports.Fields{
		"error_name":    apperror.NameOf(err),
		"error_message": err.Error(),
		"stack":         apperror.StackOf(err),
	})

	return err
}

func (s *UserCreateService) inc(label string) {
	if s.mCounter != nil {
		s.mCounter.WithLabelValues(label).Inc()
	}
}
