package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidField, "field %q is not editable", "semester")

	if err.Code != ErrCodeInvalidField {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidField)
	}
	if !strings.Contains(err.Error(), "INVALID_FIELD") {
		t.Errorf("Error() should contain the code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), `"semester"`) {
		t.Errorf("Error() should contain the formatted message: %s", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch %s", "/api/colleges-degrees")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should include the cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCourseNotFound, "no course titled %q", "Intro to Social Work")

	if !Is(err, ErrCodeCourseNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeCourseNotFound) {
		t.Error("Is should not match non-structured errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeStore, "replace failed")
	outer := fmt.Errorf("update course: %w", inner)

	if !Is(outer, ErrCodeStore) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
	if GetCode(outer) != ErrCodeStore {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), ErrCodeStore)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeExport, "wkhtmltopdf not found")
	if got := UserMessage(err); got != "wkhtmltopdf not found" {
		t.Errorf("UserMessage = %q, want message without code prefix", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestGetCodeNonStructured(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}
