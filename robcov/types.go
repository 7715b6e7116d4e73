// Package robcov: method enum and options.
package robcov

import (
	"fmt"

	"go.uber.org/zap"
)

// Method selects the robustness strategy used to form second moments.
type Method int

const (
	// MethodDefault computes the ordinary empirical covariance/correlation.
	MethodDefault Method = iota

	// MethodWinsor standardizes each column by median/MAD, computes pairwise
	// winsorized correlations, rescales by the MADs, and projects X-only
	// results to the nearest positive-semidefinite matrix.
	MethodWinsor

	// MethodWrap transforms each column by a bounded wrapping function
	// around a robust location/scale, then computes ordinary moments.
	MethodWrap

	// MethodDDC detects and imputes cellwise outliers first, then computes
	// ordinary moments on the imputed matrix. Requires p >= 2; on a single
	// column the cellwise step is skipped with a warning.
	MethodDDC
)

// methodNames is the single source of truth for Method round-tripping.
var methodNames = map[Method]string{
	MethodDefault: "default",
	MethodWinsor:  "winsor",
	MethodWrap:    "wrap",
	MethodDDC:     "ddc",
}

// String returns the canonical tag for m, or "method(<n>)" when out of range.
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod maps a string tag onto a Method. Unknown tags return
// ErrUnknownMethod rather than substituting a default, so configuration
// typos surface immediately.
func ParseMethod(tag string) (Method, error) {
	for m, s := range methodNames {
		if s == tag {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, tag)
}

// valid reports whether m is a declared enum member.
func (m Method) valid() bool {
	_, ok := methodNames[m]
	return ok
}

// Options configures Estimate and EstimateCross.
//
// Fields:
//   - Method      — robustness strategy; see the Method constants.
//   - Correlation — return a correlation (unit-diagonal) matrix instead of
//     a covariance matrix.
//   - Logger      — receives warning-level signals for sanctioned
//     degradations (e.g. DDC with p < 2). Defaults to a no-op logger.
type Options struct {
	Method      Method
	Correlation bool
	Logger      *zap.Logger
}

// DefaultOptions returns the non-robust empirical estimator configuration.
func DefaultOptions() Options {
	return Options{
		Method:      MethodDefault,
		Correlation: false,
		Logger:      zap.NewNop(),
	}
}

// logger returns the configured logger, or a no-op when unset.
func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
