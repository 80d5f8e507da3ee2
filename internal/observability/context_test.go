package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RunIDFromContext(ctx))

	ctx = WithRunID(ctx, "run-abc")
	assert.Equal(t, "run-abc", RunIDFromContext(ctx))
}

func TestModeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", ModeFromContext(ctx))

	ctx = WithMode(ctx, "sample")
	assert.Equal(t, "sample", ModeFromContext(ctx))
}

func TestContextValuesAreIndependent(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	assert.Equal(t, "", ModeFromContext(ctx))

	ctx = WithMode(ctx, "test")
	assert.Equal(t, "run-1", RunIDFromContext(ctx))
	assert.Equal(t, "test", ModeFromContext(ctx))
}
