package errors

import (
	"errors"
	"strings"
	"testing"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "TestOperation" {
		t.Errorf("Expected operation 'TestOperation', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if panicErr.Error() != "panic in TestOperation: test panic message" {
		t.Errorf("unexpected message '%s'", panicErr.Error())
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_KeepsExistingError(t *testing.T) {
	original := New("fit failed")
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = original
		panic("later panic")
	}

	err := testFunc()
	if !Is(err, original) {
		t.Errorf("original error should be preserved, got %v", err)
	}
}

func TestRecover_PanicWithError(t *testing.T) {
	cause := NewInvalidInputError("op", "X", "bad", nil)
	err := SafeExecute("collaborator", func() error {
		panic(cause)
	})

	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("panic value should be unwrappable, got %v", err)
	}
	var panicErr *PanicError
	if !errors.As(err, &panicErr) || !strings.Contains(panicErr.String(), "Stack trace") {
		t.Error("String() should include the stack trace")
	}
}

func TestSafeExecute_ReturnsError(t *testing.T) {
	want := New("plain failure")
	if err := SafeExecute("op", func() error { return want }); err != want {
		t.Errorf("SafeExecute should pass through errors, got %v", err)
	}
}
