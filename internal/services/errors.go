package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrToolMissing   = errors.New("external tool not found")
	ErrDetermination = errors.New("could not determine media property")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureKind names a bucket of the error taxonomy used in reports.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureMissing       FailureKind = "missing"
	FailureMalformedJob  FailureKind = "malformed_job"
	FailureTool          FailureKind = "tool_failure"
	FailureDetermination FailureKind = "determination_failure"
)

// Classify maps a per-track error onto the failure taxonomy.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrNotFound):
		return FailureMissing
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrValidation):
		return FailureMalformedJob
	case errors.Is(err, ErrDetermination):
		return FailureDetermination
	default:
		return FailureTool
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
