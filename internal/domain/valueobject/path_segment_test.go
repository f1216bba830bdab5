package valueobject

import (
	"errors"
	"testing"
)

func TestNewPathSegment(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "fighters"},
		{raw: "f16.glb"},
		{raw: "with space.glb"},
		{raw: "..hidden"},
		{raw: "", wantErr: true},
		{raw: ".", wantErr: true},
		{raw: "..", wantErr: true},
		{raw: "a/b", wantErr: true},
		{raw: `a\b`, wantErr: true},
		{raw: "nul\x00byte", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			segment, err := NewPathSegment(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPathSegment) {
					t.Fatalf("expected ErrInvalidPathSegment, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if segment.String() != tt.raw {
				t.Fatalf("segment = %q, want %q", segment, tt.raw)
			}
		})
	}
}
