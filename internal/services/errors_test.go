package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chartsmith/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrFilesystem, "materialize", "write", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"materialize", "write", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want services.Category
	}{
		{nil, services.CategoryNone},
		{services.Wrap(services.ErrNoInputs, "discover", "", "", nil), services.CategoryNoInputs},
		{services.Wrap(services.ErrPrecondition, "convert", "locate input", "", nil), services.CategoryPrecondition},
		{services.Wrap(services.ErrTimeout, "convert", "await save", "", nil), services.CategoryTimeout},
		{fmt.Errorf("page: %w", context.DeadlineExceeded), services.CategoryTimeout},
		{services.Wrap(services.ErrFilesystem, "materialize", "", "", nil), services.CategoryFilesystem},
		{fmt.Errorf("stop: %w", context.Canceled), services.CategoryCanceled},
		{errors.New("other"), services.CategoryOther},
	}
	for _, tc := range tests {
		if got := services.Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
