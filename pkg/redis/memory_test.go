package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Fingerprint(t *testing.T) {
	mem := NewMemory(&Client{enabled: false}, "pickmem")

	fp1 := mem.Fingerprint("chat-1", "AAPL|BUY|72")
	fp2 := mem.Fingerprint("chat-1", "AAPL|BUY|72")
	fp3 := mem.Fingerprint("chat-2", "AAPL|BUY|72")

	assert.Equal(t, fp1, fp2, "same inputs must produce the same fingerprint")
	assert.NotEqual(t, fp1, fp3, "different recipients must not collide")
	assert.Len(t, fp1, 64, "sha256 hex digest")
}

func TestMemory_Fingerprint_NamespaceReset(t *testing.T) {
	a := NewMemory(&Client{enabled: false}, "pickmem")
	b := NewMemory(&Client{enabled: false}, "pickmem-v2")

	assert.NotEqual(t,
		a.Fingerprint("chat-1", "AAPL|BUY|72"),
		b.Fingerprint("chat-1", "AAPL|BUY|72"),
	)
}

func TestMemory_DisabledClient(t *testing.T) {
	mem := NewMemory(&Client{enabled: false}, "pickmem")
	ctx := context.Background()

	exists, err := mem.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mem.SetWithTTL(ctx, "abc", time.Hour, "1"))
}
