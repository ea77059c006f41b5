// Package hash implements password hashing with argon2id. Hashes are PHC
// strings: $argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>, so the
// cost parameters travel with every hash.
package hash

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/domain/user"
)

const (
	DefaultTimeCost    uint32 = 3
	DefaultMemoryCost  uint32 = 64 * 1024
	DefaultParallelism uint8  = 4
	DefaultKeyLength   uint32 = 32
	DefaultSaltLength  uint32 = 16

	// Upper cost bounds accepted from a stored hash.
	MaxMemoryCost uint32 = 1024 * 1024
	MaxTimeCost   uint32 = 16

	paramHash = "hash"
)

var errMalformedHash = errors.New("malformed argon2 hash")

var Defaults = ports.HashOptions{
	TimeCost:    DefaultTimeCost,
	MemoryCost:  DefaultMemoryCost,
	Parallelism: DefaultParallelism,
	KeyLength:   DefaultKeyLength,
	SaltLength:  DefaultSaltLength,
}

type Argon2 struct {
	opts ports.HashOptions
	rand io.Reader
}

// New returns a provider whose instance options override Defaults.
func New(opts ports.HashOptions) *Argon2 {
	return &Argon2{opts: opts, rand: rand.Reader}
}

var _ ports.HashProvider = (*Argon2)(nil)

// WithOptions returns an independent provider; the receiver is unchanged.
func (a *Argon2) WithOptions(opts ports.HashOptions) ports.HashProvider {
	return &Argon2{opts: merge(opts, a.opts), rand: a.rand}
}

func (a *Argon2) Hash(ctx context.Context, plaintext string, opts ...ports.HashOptions) (string, error) {
	if plaintext == "" {
		return "", apperror.InvalidParam(user.FieldPassword, "A senha não pode ser vazia")
	}
	if err := ctx.Err(); err != nil {
		return "", apperror.Server(err)
	}

	o := a.resolve(opts...)
	salt := make([]byte, o.SaltLength)
	if _, err := io.ReadFull(a.rand, salt); err != nil {
		return "", apperror.Server(fmt.Errorf("generate salt: %w", err))
	}
	key := argon2.IDKey([]byte(plaintext), salt, o.TimeCost, o.MemoryCost, o.Parallelism, o.KeyLength)

	return encode(o, salt, key), nil
}

func (a *Argon2) Compare(ctx context.Context, plaintext, hashed string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, apperror.Server(err)
	}

	o, salt, key, err := decode(hashed)
	if err != nil {
		if errors.Is(err, errMalformedHash) {
			return false, apperror.InvalidParam(paramHash, "Formato de hash inválido")
		}
		return false, apperror.Server(err)
	}

	other := argon2.IDKey([]byte(plaintext), salt, o.TimeCost, o.MemoryCost, o.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

// resolve layers per-call options over instance options over Defaults.
func (a *Argon2) resolve(opts ...ports.HashOptions) ports.HashOptions {
	o := merge(a.opts, Defaults)
	for _, call := range opts {
		o = merge(call, o)
	}
	return o
}

// merge keeps every non-zero field of over and fills the rest from base.
func merge(over, base ports.HashOptions) ports.HashOptions {
	if over.TimeCost == 0 {
		over.TimeCost = base.TimeCost
	}
	if over.MemoryCost == 0 {
		over.MemoryCost = base.MemoryCost
	}
	if over.Parallelism == 0 {
		over.Parallelism = base.Parallelism
	}
	if over.KeyLength == 0 {
		over.KeyLength = base.KeyLength
	}
	if over.SaltLength == 0 {
		over.SaltLength = base.SaltLength
	}
	return over
}

func encode(o ports.HashOptions, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		o.MemoryCost, o.TimeCost, o.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decode(encoded string) (ports.HashOptions, []byte, []byte, error) {
	var o ports.HashOptions

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return o, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return o, nil, nil, errMalformedHash
	}
	if version != argon2.Version {
		return o, nil, nil, fmt.Errorf("%w: unsupported version %d", errMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &o.MemoryCost, &o.TimeCost, &o.Parallelism); err != nil {
		return o, nil, nil, errMalformedHash
	}
	if o.MemoryCost == 0 || o.TimeCost == 0 || o.Parallelism == 0 {
		return o, nil, nil, errMalformedHash
	}
	if o.MemoryCost > MaxMemoryCost || o.TimeCost > MaxTimeCost {
		return o, nil, nil, fmt.Errorf("%w: cost m=%d,t=%d out of range", errMalformedHash, o.MemoryCost, o.TimeCost)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return o, nil, nil, errMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return o, nil, nil, errMalformedHash
	}
	o.SaltLength = uint32(len(salt))
	o.KeyLength = uint32(len(key))

	return o, salt, key, nil
}
