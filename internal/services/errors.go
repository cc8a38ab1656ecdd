package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoInputs      = errors.New("no inputs found")
	ErrPrecondition  = errors.New("converter precondition failed")
	ErrTimeout       = errors.New("timeout")
	ErrExternalTool  = errors.New("external tool error")
	ErrFilesystem    = errors.New("filesystem error")
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
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

// Category names the failure class recorded for an input in the run history.
type Category string

const (
	CategoryNone          Category = ""
	CategoryNoInputs      Category = "discovery_empty"
	CategoryPrecondition  Category = "conversion_precondition"
	CategoryTimeout       Category = "conversion_timeout"
	CategoryFilesystem    Category = "archive_write"
	CategoryCanceled      Category = "canceled"
	CategoryConfiguration Category = "configuration"
	CategoryOther         Category = "failure"
)

// Classify maps an error to its failure category.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	case errors.Is(err, ErrNoInputs):
		return CategoryNoInputs
	case errors.Is(err, ErrPrecondition):
		return CategoryPrecondition
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case errors.Is(err, ErrFilesystem):
		return CategoryFilesystem
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrValidation):
		return CategoryConfiguration
	default:
		return CategoryOther
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
