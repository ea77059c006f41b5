package ports

import "context"

// HashOptions are argon2 cost parameters. Zero fields are unset and fall
// through to the next layer: per-call, then instance, then defaults.
type HashOptions struct {
	TimeCost    uint32
	MemoryCost  uint32 // KiB
	Parallelism uint8
	KeyLength   uint32
	SaltLength  uint32
}

type HashProvider interface {
	Hash(ctx context.Context, plaintext string, opts ...HashOptions) (string, error)
	Compare(ctx context.Context, plaintext, hashed string) (bool, error)
	WithOptions(opts HashOptions) HashProvider
}
