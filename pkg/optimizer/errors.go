package optimizer

import "fmt"

// Stage identifies the pipeline step an error or progress event belongs to.
type Stage string

const (
	StageDecode    Stage = "decode"
	StagePlan      Stage = "plan"
	StageFilter    Stage = "filter"
	StageComposite Stage = "composite"
	StageEncode    Stage = "encode"
)

// DecodeError reports input that is not a decodable image. Non-retryable;
// callers must not proceed to geometry planning.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a format/quality combination the encoder could not
// produce. Non-retryable for that format; auto-format treats it as a soft
// failure and tries the next candidate.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// GeometryError rejects degenerate geometry (zero-area sources, negative
// bounds) before it can reach the compositor.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "geometry: " + e.Reason
}

// StageError wraps a failure with the pipeline stage it occurred in, so
// callers can report "thumbnail failed at encode" instead of a bare error.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
