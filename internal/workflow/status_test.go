package workflow_test

import (
	"testing"

	"github.com/talenthub/backend/internal/workflow"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"Pending", "Shortlisted", "Rejected", "Accepted", "Close"}
	for _, s := range valid {
		got, err := workflow.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"pending", "Hired", "PENDING", "Open", "closed"} {
		if _, err := workflow.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	if _, err := workflow.ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}
