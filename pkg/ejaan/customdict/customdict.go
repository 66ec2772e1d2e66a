package customdict

import (
	"context"
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
	"github.com/cognicore/ejaan/pkg/ejaan/textnorm"
)

// DefaultKey is the Redis set holding user-added words.
const DefaultKey = "custom_dict"

// Backend is the set storage behind a Dict.
type Backend interface {
	SAdd(ctx context.Context, key, member string) (bool, error)
	SRem(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Dict stores custom dictionary words.
type Dict struct {
	backend Backend
	key     string
}

// New creates a Dict over backend. An empty key selects DefaultKey.
func New(backend Backend, key string) *Dict {
	if key == "" {
		key = DefaultKey
	}
	return &Dict{backend: backend, key: key}
}

// NewRedis creates a Dict backed by a Redis set.
func NewRedis(client redis.Cmdable, key string) *Dict {
	return New(RedisBackend{Client: client}, key)
}

// Add inserts a word. It reports whether the word was new.
func (d *Dict) Add(ctx context.Context, word string) (bool, error) {
	w, err := normalize(word)
	if err != nil {
		return false, err
	}
	added, err := d.backend.SAdd(ctx, d.key, w)
	if err != nil {
		return false, fmt.Errorf("add %q: %w", w, err)
	}
	return added, nil
}

// Remove deletes a word from the custom dictionary.
func (d *Dict) Remove(ctx context.Context, word string) error {
	w, err := normalize(word)
	if err != nil {
		return err
	}
	removed, err := d.backend.SRem(ctx, d.key, w)
	if err != nil {
		return fmt.Errorf("remove %q: %w", w, err)
	}
	if !removed {
		return fmt.Errorf("custom word %q: %w", w, internalerr.ErrNotFound)
	}
	return nil
}

// All returns every stored word, sorted.
func (d *Dict) All(ctx context.Context) ([]string, error) {
	words, err := d.backend.SMembers(ctx, d.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	sort.Strings(words)
	return words, nil
}

func normalize(word string) (string, error) {
	w := textnorm.Normalize(word)
	if w == "" {
		return "", fmt.Errorf("custom word %q: %w", word, internalerr.ErrInvalidInput)
	}
	return w, nil
}

// RedisBackend stores words in a Redis set.
type RedisBackend struct {
	Client redis.Cmdable
}

func (b RedisBackend) SAdd(ctx context.Context, key, member string) (bool, error) {
	n, err := b.Client.SAdd(ctx, key, member).Result()
	return n > 0, err
}

func (b RedisBackend) SRem(ctx context.Context, key, member string) (bool, error) {
	n, err := b.Client.SRem(ctx, key, member).Result()
	return n > 0, err
}

func (b RedisBackend) SMembers(ctx context.Context, key string) ([]string, error) {
	return b.Client.SMembers(ctx, key).Result()
}

// MemoryBackend keeps sets in process memory.
type MemoryBackend struct {
	sets mapset.Set[string] // "key\x00member"
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sets: mapset.NewSet[string]()}
}

func (b *MemoryBackend) SAdd(_ context.Context, key, member string) (bool, error) {
	return b.sets.Add(key + "\x00" + member), nil
}

func (b *MemoryBackend) SRem(_ context.Context, key, member string) (bool, error) {
	k := key + "\x00" + member
	if !b.sets.Contains(k) {
		return false, nil
	}
	b.sets.Remove(k)
	return true, nil
}

func (b *MemoryBackend) SMembers(_ context.Context, key string) ([]string, error) {
	prefix := key + "\x00"
	var out []string
	b.sets.Each(func(k string) bool {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k[len(prefix):])
		}
		return false
	})
	return out, nil
}
