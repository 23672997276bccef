package numeric

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		kind Kind
		want error
	}{
		{InvalidInput, ErrInvalidInput},
		{Degenerate, ErrDegenerate},
		{Unsupported, ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := Errorf("Op", tt.kind, "detail %d", 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}

			wrapped := fmt.Errorf("outer: %w", err)
			if got := KindOf(wrapped); got != tt.kind {
				t.Errorf("KindOf = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	err := Errorf("Lagrange", Degenerate, "duplicate x=%g", 1.0)
	want := "Lagrange: degenerate: duplicate x=1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != OK {
		t.Error("nil error should be OK")
	}
	if KindOf(fmt.Errorf("x: %w", ErrUnsupported)) != Unsupported {
		t.Error("wrapped sentinel should classify")
	}
	if KindOf(errors.New("other")) != InvalidInput {
		t.Error("unknown errors classify as invalid input")
	}
}
