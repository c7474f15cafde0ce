package utils

import (
	"go.uber.org/zap"
)

// Component tags used by the payment operations.
const (
	ComponentCreateCheckout = "CREATE-CHECKOUT"
	ComponentVerifyPayment  = "VERIFY-PAYMENT"
)

// StepLogger emits one entry per step of an operation, tagged with the
// component it belongs to.
type StepLogger struct {
	logger *zap.Logger
}

func NewStepLogger(base *zap.Logger, component string) *StepLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &StepLogger{
		logger: base.Named(component).With(zap.String("component", component)),
	}
}

// Step records that the named step was reached.
func (s *StepLogger) Step(step string, details ...zap.Field) {
	s.logger.Info(step, details...)
}

// Warn records a step that failed without failing the operation.
func (s *StepLogger) Warn(step string, err error, details ...zap.Field) {
	s.logger.Warn(step, append(details, zap.Error(err))...)
}

// Fail records the error that ended the operation.
func (s *StepLogger) Fail(step string, err error, details ...zap.Field) {
	s.logger.Error(step, append(details, zap.Error(err))...)
}

// With returns a StepLogger carrying extra fields on every entry.
func (s *StepLogger) With(fields ...zap.Field) *StepLogger {
	return &StepLogger{logger: s.logger.With(fields...)}
}
