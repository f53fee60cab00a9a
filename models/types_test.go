// ABOUTME: Tests for CRM data models
// ABOUTME: Validates enum fallback, normalization, patches and error matching
package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeStageFallsBackToLead(t *testing.T) {
	tests := []struct {
		in   Stage
		want Stage
	}{
		{"Won", StageWon},
		{"negotiation", StageNegotiation},
		{"", StageLead},
		{"Frozen", StageLead},
	}

	for _, tt := range tests {
		if got := NormalizeStage(tt.in); got != tt.want {
			t.Errorf("NormalizeStage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDealNormalizeKeepsUnknownStage(t *testing.T) {
	d := Deal{Title: "  Renewal ", Stage: "frozen", Probability: 140}
	d.Normalize()

	if d.Title != "Renewal" {
		t.Errorf("expected trimmed title, got %q", d.Title)
	}
	if d.Stage != "frozen" {
		t.Errorf("unknown stage should be kept verbatim, got %q", d.Stage)
	}
	if d.Probability != 100 {
		t.Errorf("expected probability clamped to 100, got %d", d.Probability)
	}

	d = Deal{Stage: "proposal"}
	d.Normalize()
	if d.Stage != StageProposal {
		t.Errorf("expected canonical stage, got %q", d.Stage)
	}
}

func TestActivityNormalizeDuration(t *testing.T) {
	email := Activity{Type: ActivityEmail, Duration: 30}
	email.Normalize()
	if email.Duration != 0 {
		t.Errorf("email duration should be zeroed, got %d", email.Duration)
	}
	if email.Date.IsZero() {
		t.Error("activity date should default to now")
	}

	call := Activity{Type: "CALL", Duration: 15}
	call.Normalize()
	if call.Type != ActivityCall || call.Duration != 15 {
		t.Errorf("unexpected call normalization: %+v", call)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	task := Task{DueDate: now.Add(-time.Minute)}
	if !task.IsOverdue(now) {
		t.Error("past due task should be overdue")
	}

	task.Completed = true
	if task.IsOverdue(now) {
		t.Error("completed task should never be overdue")
	}

	future := Task{DueDate: now.Add(time.Hour)}
	if future.IsOverdue(now) {
		t.Error("future task should not be overdue")
	}
}

func TestDealPatchMergesOnlySetFields(t *testing.T) {
	contactID := uuid.New()
	closeDate := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	d := Deal{
		Title:             "Enterprise",
		Value:             500000,
		Stage:             StageLead,
		ContactID:         &contactID,
		ExpectedCloseDate: &closeDate,
	}

	stage := StageNegotiation
	DealPatch{Stage: &stage}.Apply(&d)

	if d.Stage != StageNegotiation {
		t.Errorf("expected stage to change, got %s", d.Stage)
	}
	if d.Title != "Enterprise" || d.Value != 500000 {
		t.Errorf("unset fields should keep prior values: %+v", d)
	}
	if d.ContactID == nil || *d.ContactID != contactID {
		t.Error("contact reference should be retained")
	}

	DealPatch{ClearExpectedClose: true}.Apply(&d)
	if d.ExpectedCloseDate != nil {
		t.Error("expected close date should be cleared")
	}
}

func TestPatchCopiesReferences(t *testing.T) {
	id := uuid.New()
	task := Task{}
	TaskPatch{ContactID: &id}.Apply(&task)

	id = uuid.New()
	if *task.ContactID == id {
		t.Error("patch should copy the reference, not alias the caller's variable")
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	nf := &NotFoundError{Entity: "deal", ID: uuid.New()}
	if !errors.Is(nf, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	ve := &ValidationError{Entity: "task", Fields: []FieldError{{Field: "title", Reason: "is required"}}}
	if !errors.Is(ve, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	if ve.Error() != "invalid task: title is required" {
		t.Errorf("unexpected message: %s", ve.Error())
	}

	cause := errors.New("disk I/O error")
	se := &StoreError{Entity: "contact", Op: "list", Err: cause}
	if !errors.Is(se, ErrStoreUnavailable) || !errors.Is(se, cause) {
		t.Error("StoreError should match both ErrStoreUnavailable and its cause")
	}
}

func TestPaginate(t *testing.T) {
	records := []int{1, 2, 3, 4, 5}

	got := Paginate(records, ListParams{Page: 1, Limit: 2})
	if len(got) != 2 || got[0] != 3 {
		t.Errorf("unexpected page: %v", got)
	}

	got = Paginate(records, ListParams{Page: 3, Limit: 2})
	if len(got) != 0 {
		t.Errorf("expected empty page past the end, got %v", got)
	}

	page := Page[int]{Total: 5}
	if page.Pages(2) != 3 {
		t.Errorf("expected 3 pages, got %d", page.Pages(2))
	}
}
