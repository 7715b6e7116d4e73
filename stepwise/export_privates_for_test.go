// Package stepwise: narrow re-exports so the external test package can
// exercise fold drawing and validation directly.

package stepwise

var (
	// DrawFolds re-exports drawFolds for tests.
	DrawFolds = drawFolds

	// ValidateFolds re-exports validateFolds for tests.
	ValidateFolds = validateFolds
)
