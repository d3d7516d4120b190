package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasks/internal/app"
	_ "go.trai.ch/tasks/internal/wiring"
)

// TestGraftGraph resolves the full node graph the binary uses, so a missing
// registration or a mistyped dependency fails here instead of at startup.
func TestGraftGraph(t *testing.T) {
	c, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, c.App)
	require.NotNil(t, c.Logger)
}
