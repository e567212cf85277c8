package zxerr

import (
	"errors"
	"testing"
)

func TestHostIOWrapsUnderlyingError(t *testing.T) {
	cause := errors.New("callback panicked")
	err := HostIO("Step", cause)
	if err.Kind != KindHostIO {
		t.Fatalf("Kind = %v, want KindHostIO", err.Kind)
	}
	if !errors.Is(err, cause) {
		t.Fatal("HostIO error should unwrap to the original cause")
	}
}

func TestInvalidDataHasNoUnderlyingError(t *testing.T) {
	err := InvalidData("ApplySnapshot", "RAM bank index out of range")
	if err.Err != nil {
		t.Fatal("InvalidData should not carry an underlying error")
	}
	if err.Error() == "" {
		t.Fatal("Error() should not be empty")
	}
}
