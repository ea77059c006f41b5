package hash

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
)

// cheap keeps the tests fast; production uses Defaults.
var cheap = ports.HashOptions{TimeCost: 1, MemoryCost: 1024, Parallelism: 1}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestArgon2_HashAndCompare(t *testing.T) {
	h := New(cheap)
	ctx := context.Background()

	hashed, err := h.Hash(ctx, "StrongP@ss1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$v=19$m=1024,t=1,p=1$"), hashed)
	assert.NotContains(t, hashed, "StrongP@ss1")

	ok, err := h.Compare(ctx, "StrongP@ss1", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(ctx, "WrongP@ss1", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2_SaltedHashesDiffer(t *testing.T) {
	h := New(cheap)

	a, err := h.Hash(context.Background(), "StrongP@ss1")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "StrongP@ss1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestArgon2_EmptyPlaintext(t *testing.T) {
	_, err := New(cheap).Hash(context.Background(), "")

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInvalidParam))
}

func TestArgon2_OptionPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults fill unset instance fields", func(t *testing.T) {
		o := New(ports.HashOptions{TimeCost: 1, MemoryCost: 1024}).resolve()
		assert.Equal(t, uint32(1), o.TimeCost)
		assert.Equal(t, uint32(1024), o.MemoryCost)
		assert.Equal(t, DefaultParallelism, o.Parallelism)
		assert.Equal(t, DefaultKeyLength, o.KeyLength)
		assert.Equal(t, DefaultSaltLength, o.SaltLength)
	})

	t.Run("per-call wins over instance", func(t *testing.T) {
		hashed, err := New(cheap).Hash(ctx, "StrongP@ss1", ports.HashOptions{TimeCost: 2, KeyLength: 16})
		require.NoError(t, err)
		assert.Contains(t, hashed, "m=1024,t=2,p=1$")

		o, _, key, err := decode(hashed)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), o.TimeCost)
		assert.Len(t, key, 16)
	})

	t.Run("with options derives without mutating", func(t *testing.T) {
		base := New(cheap)
		derived := base.WithOptions(ports.HashOptions{MemoryCost: 2048})

		hashed, err := derived.Hash(ctx, "StrongP@ss1")
		require.NoError(t, err)
		assert.Contains(t, hashed, "m=2048,t=1,p=1$")

		hashed, err = base.Hash(ctx, "StrongP@ss1")
		require.NoError(t, err)
		assert.Contains(t, hashed, "m=1024,t=1,p=1$")
	})

	t.Run("compare reads cost from the hash", func(t *testing.T) {
		hashed, err := New(cheap).WithOptions(ports.HashOptions{TimeCost: 2}).Hash(ctx, "StrongP@ss1")
		require.NoError(t, err)

		ok, err := New(cheap).Compare(ctx, "StrongP@ss1", hashed)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestArgon2_CompareMalformed(t *testing.T) {
	h := New(cheap)

	tests := []struct {
		name   string
		hashed string
	}{
		{"empty", ""},
		{"bcrypt", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"argon2i", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"old version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"zero params", "$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"memory cost too high", "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"time cost too high", "$argon2id$v=19$m=1024,t=17,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5a2V5"},
		{"missing key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Compare(context.Background(), "StrongP@ss1", tt.hashed)
			assert.False(t, ok)
			appErr, isApp := apperror.As(err)
			require.True(t, isApp)
			assert.Equal(t, apperror.KindInvalidParam, appErr.Kind)
			assert.Equal(t, "hash", appErr.Param)
		})
	}
}

func TestArgon2_ServerErrors(t *testing.T) {
	t.Run("salt generation failure", func(t *testing.T) {
		h := New(cheap)
		h.rand = failingReader{}

		_, err := h.Hash(context.Background(), "StrongP@ss1")
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindServer))
		assert.Contains(t, err.Error(), "entropy exhausted")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(cheap).Hash(ctx, "StrongP@ss1")
		assert.True(t, apperror.Is(err, apperror.KindServer))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
