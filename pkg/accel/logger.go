package accel

import (
	"go.uber.org/zap"

	"github.com/df07/go-bvh-tracer/pkg/core"
)

// zapLogger adapts a zap.SugaredLogger to core.Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger returns the default core.Logger implementation, wrapping
// zap's production configuration the way the rest of the example corpus
// wires structured logging into otherwise-independent packages.
func NewZapLogger() (core.Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &zapLogger{s: l.Sugar()}, nil
}

func (z *zapLogger) Printf(format string, args ...interface{}) {
	z.s.Infof(format, args...)
}
