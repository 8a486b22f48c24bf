package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	require.Error(t, Init("loud", true))
	require.NoError(t, Init(" DEBUG ", false))
	SetNopLogger()
}

func TestContextFieldsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &logger{zl: zap.New(core)}

	ctx := ContextWithFields(context.Background(), String("request_id", "req-1"))
	ctx = ContextWithFields(ctx, String("method", "GET"))

	l.With(String("part_id", "p-1")).Info(ctx, "part fetched", Int("status", 200))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "part fetched", entry.Message)
	assert.Equal(t, map[string]any{
		"request_id": "req-1",
		"method":     "GET",
		"part_id":    "p-1",
		"status":     int64(200),
	}, entry.ContextMap())
}

func TestFieldsFromContextNil(t *testing.T) {
	//nolint:staticcheck
	assert.Nil(t, fieldsFromContext(nil))
	assert.Empty(t, fieldsFromContext(context.Background()))
}
