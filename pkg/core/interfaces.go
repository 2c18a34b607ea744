package core

// Logger is the injectable sink for build and traversal diagnostics. It is
// intentionally minimal (one method, printf-style) so callers can adapt
// whatever logging stack their renderer already uses; accel.NewZapLogger
// provides the default implementation over go.uber.org/zap.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material is an opaque, non-owning reference to a scene material. Material
// sampling and BRDF evaluation live entirely outside this module (they are
// the outer renderer's concern); the acceleration structure and leaf
// intersectors only ever carry this reference through to a HitRecord.
type Material interface{}
