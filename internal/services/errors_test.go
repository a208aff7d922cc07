package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"simradio/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "convert", "ffmpeg", "exit status 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"convert", "ffmpeg", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerDefaultsToExternalTool(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want services.FailureKind
	}{
		{"nil", nil, services.FailureNone},
		{"missing", services.Wrap(services.ErrNotFound, "resolve", "", "no candidate", nil), services.FailureMissing},
		{"malformed", services.Wrap(services.ErrConfiguration, "convert", "plan", "3 sources", nil), services.FailureMalformedJob},
		{"determination", fmt.Errorf("channels: %w", services.ErrDetermination), services.FailureDetermination},
		{"tool", services.Wrap(services.ErrExternalTool, "convert", "ffmpeg", "", errors.New("exit 1")), services.FailureTool},
		{"tool missing", services.ErrToolMissing, services.FailureTool},
		{"plain", errors.New("io"), services.FailureTool},
	}
	for _, tc := range cases {
		if got := services.Classify(tc.err); got != tc.want {
			t.Fatalf("%s: Classify = %q, want %q", tc.name, got, tc.want)
		}
	}
}
