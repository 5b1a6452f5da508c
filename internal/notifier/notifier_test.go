package notifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimsavar/authwall/internal/testutil"
)

func TestLog_Send(t *testing.T) {
	t.Parallel()

	n := NewLog(testutil.MakeNoopLogger())
	assert.NoError(t, n.Send(context.Background(), "alice@example.com", "tok"))
}

func TestSMTP_Send_ContextCancelled(t *testing.T) {
	t.Parallel()

	n := NewSMTP(Config{Host: "localhost", Port: "2525", From: "no-reply@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "alice@example.com", "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
