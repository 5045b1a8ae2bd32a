package gophys

// WorldConfig configures a new World. Zero-value fields fall back to
// the library defaults noted per field.
type WorldConfig struct {
	Gravity Vec3 // DefaultWorldConfig sets {0, 0, -9.82}; a zero value means no gravity

	SolverIterations int     // default 10
	SolverTolerance  float32 // default 1e-7

	DefaultFriction    float32 // default 0.3
	DefaultRestitution float32 // default 0.3

	// QuatNormalizeSkip is how many steps to skip between quaternion
	// renormalizations (0 normalizes every step). Cheap bodies under
	// heavy load can tolerate a few skipped steps before drift becomes
	// visible; see World.internalStep.
	QuatNormalizeSkip int
	// QuatNormalizeFast selects the cheap Newton-step approximation
	// (Quaternion.NormalizeFast) over the exact Normalize whenever a
	// renormalization is due.
	QuatNormalizeFast bool

	Logger Logger // default (nil): a DefaultLogger, debug off, prefixed with the World's DebugID
}

// NewWorldConfig returns the zero-value-safe default WorldConfig, ready
// to mutate before passing to NewWorldWithConfig.
func NewWorldConfig() WorldConfig { return DefaultWorldConfig() }

// DefaultWorldConfig returns the library's default configuration.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:            Vec3{0, 0, -9.82},
		SolverIterations:   10,
		SolverTolerance:    1e-7,
		DefaultFriction:    0.3,
		DefaultRestitution: 0.3,
		QuatNormalizeSkip:  0,
		QuatNormalizeFast:  false,
		Logger:             nil,
	}
}
