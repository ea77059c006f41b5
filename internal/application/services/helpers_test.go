package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/validators"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/memory"
	"user-registry-api/internal/infrastructure/hash"
	"user-registry-api/internal/infrastructure/sanitizer"
	"user-registry-api/internal/infrastructure/validator"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type logEntry struct {
	Level  string
	Msg    string
	Fields ports.Fields
}

// memLogger records every entry with its bound context merged in.
type memLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	ctx     ports.Fields
}

func newMemLogger() *memLogger {
	return &memLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}, ctx: ports.Fields{}}
}

func (l *memLogger) Debug(msg string, p ...ports.Fields) { l.add("debug", msg, p) }
func (l *memLogger) Info(msg string, p ...ports.Fields)  { l.add("info", msg, p) }
func (l *memLogger) Warn(msg string, p ...ports.Fields)  { l.add("warn", msg, p) }
func (l *memLogger) Error(msg string, p ...ports.Fields) { l.add("error", msg, p) }

func (l *memLogger) WithContext(fields ports.Fields) ports.Logger {
	ctx := ports.Fields{}
	for k, v := range l.ctx {
		ctx[k] = v
	}
	for k, v := range fields {
		ctx[k] = v
	}
	return &memLogger{mu: l.mu, entries: l.entries, ctx: ctx}
}

func (l *memLogger) add(level, msg string, payload []ports.Fields) {
	f := ports.Fields{}
	for k, v := range l.ctx {
		f[k] = v
	}
	for _, p := range payload {
		for k, v := range p {
			f[k] = v
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{Level: level, Msg: msg, Fields: f})
}

func (l *memLogger) All() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), *l.entries...)
}

func (l *memLogger) ByLevel(level string) []logEntry {
	var out []logEntry
	for _, e := range l.All() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Dump renders every entry so tests can search the whole log output.
func (l *memLogger) Dump() string {
	var b strings.Builder
	for _, e := range l.All() {
		fmt.Fprintf(&b, "%s %s %v\n", e.Level, e.Msg, e.Fields)
	}
	return b.String()
}

// spyRepo wraps the in-memory store, counts writes and can fail on demand.
type spyRepo struct {
	*memory.UserRepository
	creates   int
	createErr error
	listErr   error
}

func newSpyRepo() *spyRepo {
	return &spyRepo{UserRepository: memory.NewUserRepository()}
}

func (r *spyRepo) Create(ctx context.Context, nu user.NewUser) (*user.User, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.UserRepository.Create(ctx, nu)
}

func (r *spyRepo) List(ctx context.Context) (user.Users, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.UserRepository.List(ctx)
}

type fakeHasher struct {
	err   error
	calls int
}

func (h *fakeHasher) Hash(_ context.Context, plaintext string, _ ...ports.HashOptions) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + strings.Repeat("*", len(plaintext)), nil
}

func (h *fakeHasher) Compare(context.Context, string, string) (bool, error) { return false, nil }

func (h *fakeHasher) WithOptions(ports.HashOptions) ports.HashProvider { return h }

type capturePublisher struct {
	events []ports.UserEvent
	accept bool
}

func (p *capturePublisher) Publish(e ports.UserEvent) bool {
	p.events = append(p.events, e)
	return p.accept
}

func newDataValidator(repo user.Repository) ports.DataValidator {
	return validators.NewDataValidator(
		validator.NewEmail(),
		validators.NewEmailUniqueness(repo),
		validator.NewPhone("BR"),
		validator.NewBirthdate(validator.WithClock(func() time.Time { return fixedNow })),
		validator.NewPassword(),
	)
}

// cheapArgon2 keeps the real hash provider but at a cost fit for tests.
func cheapArgon2() ports.HashProvider {
	return hash.New(ports.HashOptions{TimeCost: 1, MemoryCost: 1024, Parallelism: 1})
}

type createFixture struct {
	svc       *UserCreateService
	repo      *spyRepo
	logger    *memLogger
	publisher *capturePublisher
}

func newCreateFixture(hasher ports.HashProvider) createFixture {
	repo := newSpyRepo()
	logger := newMemLogger()
	publisher := &capturePublisher{accept: true}
	if hasher == nil {
		hasher = cheapArgon2()
	}

	svc := NewUserCreateService(
		sanitizer.NewUserData(sanitizer.NewXSS()),
		newDataValidator(repo),
		hasher,
		repo,
		publisher,
		logger,
		nil,
	).(*UserCreateService)

	return createFixture{svc: svc, repo: repo, logger: logger, publisher: publisher}
}

func johnDoe() *user.CreateData {
	return &user.CreateData{
		Name:      " John  Doe ",
		Email:     " JOHN@EX.COM ",
		Phone:     "(11) 98765-4321",
		Birthdate: "1990-01-01",
		Password:  "StrongP@ss1",
	}
}
