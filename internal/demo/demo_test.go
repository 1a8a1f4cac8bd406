package demo

import (
	"context"
	"testing"

	"github.com/dayhive/dayhive/internal/models"
)

func TestIsDemoUser(t *testing.T) {
	if !IsDemoUser("test@test.il", "test") {
		t.Error("expected demo credentials to be recognized")
	}
	if IsDemoUser("someone@example.com", "test") {
		t.Error("expected other credentials to be rejected")
	}
}

func TestProjectCodesAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for _, p := range Projects {
		if _, dup := seen[p.Code]; dup {
			t.Errorf("duplicate fixture project code %s", p.Code)
		}
		seen[p.Code] = struct{}{}
	}
}

func TestSendReportEchoesLinesAsValid(t *testing.T) {
	c := NewClient()
	payload := models.SubmissionPayload{
		Identity: "demo",
		ProjectReports: map[string][]models.ReportLine{
			"PRJ-001": {
				{ReportDate: "2024-01-02", StartTime: "09:00", EndTime: "10:00", Location: 1},
				{ReportDate: "2024-01-02", StartTime: "11:00", EndTime: "12:00", Location: 1},
			},
		},
	}

	result, err := c.SendReport(context.Background(), payload)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !result.Success {
		t.Error("expected demo submission to succeed")
	}
	if len(result.ValidLines) != 2 {
		t.Errorf("expected 2 valid lines, got %d", len(result.ValidLines))
	}
	if len(result.InvalidLines) != 0 {
		t.Errorf("expected no invalid lines, got %d", len(result.InvalidLines))
	}
}

func TestCompareReportsMarkOpenDays(t *testing.T) {
	c := NewClient()
	rows, err := c.CompareReports(context.Background(), "2024-01-01", "2024-01-31", "demo")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	open := 0
	for _, r := range rows {
		if !r.Reported() {
			open++
		}
	}
	if open != 1 {
		t.Errorf("expected exactly one open day in fixtures, got %d", open)
	}
}
