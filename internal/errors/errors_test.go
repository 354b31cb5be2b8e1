package errors

import (
	"fmt"
	"testing"
)

func TestSatchelError_Error(t *testing.T) {
	err := &SatchelError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "list not found",
	}

	expected := "NOT_FOUND: list not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("item_id is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "item_id is required" {
		t.Errorf("Message = %q, want %q", err.Message, "item_id is required")
	}
}

func TestNewValidation(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("basics.destination", "Destination is required")
	fields.Add("basics.destination", "second")
	err := NewValidation(fields)

	if err.Code != ErrValidationFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidationFailed)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	got := Fields(err)
	if len(got["basics.destination"]) != 2 {
		t.Errorf("Fields()[basics.destination] = %v, want 2 messages", got["basics.destination"])
	}
}

func TestFields_NonValidation(t *testing.T) {
	if got := Fields(NewNotFound("list", "x")); got != nil {
		t.Errorf("Fields() = %v, want nil", got)
	}
	if got := Fields(fmt.Errorf("plain")); got != nil {
		t.Errorf("Fields() = %v, want nil", got)
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("list", "01HX")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message != "list not found: 01HX" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["identifier"] != "01HX" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "01HX")
	}
}

func TestNewRateLimited(t *testing.T) {
	err := NewRateLimited()
	if err.Status != 429 {
		t.Errorf("Status = %d, want 429", err.Status)
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("database connection failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want generic message", err.Message)
		}
		if err.Details["internal_error"] != "database connection failed" {
			t.Errorf("Details[internal_error] = %v", err.Details["internal_error"])
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestAs(t *testing.T) {
	nf := NewNotFound("list", "a")
	if As(fmt.Errorf("wrap: %w", nf)) != nf {
		t.Error("As() should unwrap to the original SatchelError")
	}
	if As(fmt.Errorf("plain")).Code != ErrInternal {
		t.Error("As() should map plain errors to INTERNAL")
	}
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("list", "test"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("list", "test"), ErrInternal) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for non-SatchelError")
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("lists[0]: %w", NewNotFound("list", "test"))
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped SatchelError")
		}
	})
}
