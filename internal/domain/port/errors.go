package port

import "fmt"

// SchemaMismatchError reports a feature vector whose shape or ordering does
// not match what a loaded artifact expects. This is a configuration bug and
// is fatal to the request.
type SchemaMismatchError struct {
	Model string
	Want  string
	Got   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("model %s: feature schema mismatch: want %s, got %s", e.Model, e.Want, e.Got)
}

// ModelInferenceError reports a model execution failure such as a numerical
// error or a corrupted artifact. It is surfaced, never replaced with a
// default score.
type ModelInferenceError struct {
	Model string
	Err   error
}

func (e *ModelInferenceError) Error() string {
	return fmt.Sprintf("model %s: inference failed: %v", e.Model, e.Err)
}

func (e *ModelInferenceError) Unwrap() error {
	return e.Err
}
