package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStepLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	steps := NewStepLogger(zap.New(core), ComponentVerifyPayment)

	steps.Step("Session ID received", zap.String("sessionId", "sess_1"))
	steps.With(zap.String("sessionId", "sess_1")).Fail("Payment update failed", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "VERIFY-PAYMENT", entries[0].LoggerName)
	assert.Equal(t, "Session ID received", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.False(t, entries[0].Time.IsZero())
	assert.Equal(t, "sess_1", entries[0].ContextMap()["sessionId"])
	assert.Equal(t, "VERIFY-PAYMENT", entries[0].ContextMap()["component"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, "sess_1", entries[1].ContextMap()["sessionId"])
}

func TestNewStepLogger_NilBase(t *testing.T) {
	assert.NotPanics(t, func() {
		NewStepLogger(nil, ComponentCreateCheckout).Step("Function started")
	})
}
