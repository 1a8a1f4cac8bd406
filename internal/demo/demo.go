// Package demo is an offline stand-in for the reporting service. It serves
// fixture data under the demo identity namespace so the client can be
// exercised without an account or a network.
package demo

import (
	"context"
	"time"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/models"
)

const (
	Email    = "test@test.il"
	Password = "test"
)

// IsDemoUser reports whether the credentials select demo mode.
func IsDemoUser(email, password string) bool {
	return email == Email && password == Password
}

// Projects is the fixture project list. PRJ-004 shares an account with
// PRJ-001 on purpose, so grouping by client is visible in the UI.
var Projects = []models.Project{
	{Code: "PRJ-001", ShortDescription: "Website Redesign", AccountName: "Acme Corp", SubBudgetTopic: "Development"},
	{Code: "PRJ-002", ShortDescription: "Mobile App", AccountName: "TechStart Ltd", SubBudgetTopic: "Engineering"},
	{Code: "PRJ-003", ShortDescription: "API Integration", AccountName: "DataFlow Inc", SubBudgetTopic: "Backend"},
	{Code: "PRJ-004", ShortDescription: "Dashboard Analytics", AccountName: "Acme Corp", SubBudgetTopic: "Data"},
}

// Client implements the reporting-service surface with canned data.
type Client struct {
	now func() time.Time
}

func NewClient() *Client {
	return &Client{now: time.Now}
}

func (c *Client) today() string {
	return c.now().Format(constants.DateLayout)
}

func (c *Client) yesterday() string {
	return c.now().AddDate(0, 0, -1).Format(constants.DateLayout)
}

func (c *Client) FetchProjects(ctx context.Context, identity string) ([]models.Project, error) {
	return Projects, nil
}

func (c *Client) CompareReports(ctx context.Context, fromDate, toDate, identity string) ([]models.CompareReport, error) {
	doc1, doc2 := int64(12345), int64(12338)
	open1, open2 := "08:30", "17:00"
	open3, open4 := "09:00", "15:00"
	return []models.CompareReport{
		{
			WorkDate:          c.today(),
			DayInWeek:         c.now().Weekday().String(),
			AgreementName:     "Website Redesign",
			TotalServiceHours: 8.5,
			AgreementHours:    9,
			DiffHours:         0.5,
			OpenRangeStart:    &open1,
			OpenRangeEnd:      &open2,
			LastDocID:         &doc1,
			ShortDescription:  "Frontend development",
		},
		{
			WorkDate:          c.yesterday(),
			DayInWeek:         c.now().AddDate(0, 0, -1).Weekday().String(),
			AgreementName:     "Mobile App",
			TotalServiceHours: 6,
			AgreementHours:    9,
			DiffHours:         3,
			OpenRangeStart:    &open3,
			OpenRangeEnd:      &open4,
			LastDocID:         nil,
		},
		{
			WorkDate:          c.now().AddDate(0, 0, -2).Format(constants.DateLayout),
			DayInWeek:         c.now().AddDate(0, 0, -2).Weekday().String(),
			AgreementName:     "Dashboard Analytics",
			TotalServiceHours: 7.5,
			AgreementHours:    9,
			DiffHours:         1.5,
			LastDocID:         &doc2,
		},
	}, nil
}

func (c *Client) DailyReports(ctx context.Context, fromDate, toDate, identity string) ([]models.DailyReport, error) {
	today := c.today()
	return []models.DailyReport{
		{StartDate: today, EndDate: today, StartTime: "08:30", EndTime: "12:30", Quantity: 240, Location: "Office", ShortDescription: "Website Redesign", AccountName: "Acme Corp", Status: "Approved", AgreementName: "Website Redesign", Code: "D-001"},
		{StartDate: today, EndDate: today, StartTime: "13:30", EndTime: "17:00", Quantity: 210, Location: "Office", ShortDescription: "Website Redesign", AccountName: "Acme Corp", Status: "Approved", AgreementName: "Website Redesign", Code: "D-002"},
		{StartDate: today, EndDate: today, StartTime: "09:00", EndTime: "12:00", Quantity: 180, Location: "Remote", ShortDescription: "Mobile App", AccountName: "TechStart Ltd", Status: "Pending", AgreementName: "Mobile App", Code: "D-003"},
		{StartDate: today, EndDate: today, StartTime: "13:00", EndTime: "16:00", Quantity: 180, Location: "Remote", ShortDescription: "API Integration", AccountName: "DataFlow Inc", Status: "Approved", AgreementName: "API Integration", Code: "D-004"},
	}, nil
}

// SendReport accepts every submitted line, echoing them back as valid so the
// local clear-after-send flow behaves exactly as it would against the real
// service.
func (c *Client) SendReport(ctx context.Context, payload models.SubmissionPayload) (*models.SendResult, error) {
	result := &models.SendResult{Success: true}
	for code, lines := range payload.ProjectReports {
		for _, l := range lines {
			result.ValidLines = append(result.ValidLines, models.LineResult{
				Project:    code,
				ReportDate: l.ReportDate,
				StartTime:  l.StartTime,
				EndTime:    l.EndTime,
				Location:   l.Location,
				Notes:      l.Notes,
			})
		}
	}
	return result, nil
}

func (c *Client) SaveCredentials(ctx context.Context, employeeCode, employeePass string) error {
	return nil
}
