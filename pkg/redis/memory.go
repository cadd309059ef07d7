package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Memory is the notification dedup store: a fingerprint is remembered with a
// TTL so the same result is not re-sent to the same recipient.
type Memory struct {
	client    *Client
	namespace string
}

// NewMemory creates a dedup memory under the given namespace. Changing the
// namespace acts as a logical reset of all remembered fingerprints.
func NewMemory(client *Client, namespace string) *Memory {
	return &Memory{
		client:    client,
		namespace: namespace,
	}
}

// Fingerprint derives the one-way dedup key from namespace, recipient and a
// stable projection of the notification payload.
func (m *Memory) Fingerprint(recipient, payload string) string {
	raw := fmt.Sprintf("%s:%s:%s", m.namespace, recipient, payload)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Exists reports whether the fingerprint has been remembered.
// With Redis disabled nothing is ever remembered.
func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	if !m.client.Enabled() {
		return false, nil
	}

	n, err := m.client.Redis().Exists(ctx, m.redisKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("memory exists failed: %w", err)
	}
	return n > 0, nil
}

// SetWithTTL remembers the fingerprint for the given TTL.
// TTLs below one minute are raised to one minute.
func (m *Memory) SetWithTTL(ctx context.Context, key string, ttl time.Duration, value string) error {
	if !m.client.Enabled() {
		return nil
	}

	if ttl < time.Minute {
		ttl = time.Minute
	}

	if err := m.client.Redis().SetEx(ctx, m.redisKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("memory setex failed: %w", err)
	}
	return nil
}

func (m *Memory) redisKey(key string) string {
	return fmt.Sprintf("%s:fp:%s", m.namespace, key)
}
