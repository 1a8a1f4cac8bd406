package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/models"
	"github.com/dayhive/dayhive/internal/projectcache"
	"github.com/dayhive/dayhive/internal/storage"
	"github.com/dayhive/dayhive/internal/tracker"
)

// identityKey is the global (non-namespaced) key remembering who is signed in.
const identityKey = "identity"

// Service is the reporting-service surface the commands talk to. The real
// HTTP client and the demo fixture client both satisfy it.
type Service interface {
	FetchProjects(ctx context.Context, identity string) ([]models.Project, error)
	CompareReports(ctx context.Context, fromDate, toDate, identity string) ([]models.CompareReport, error)
	DailyReports(ctx context.Context, fromDate, toDate, identity string) ([]models.DailyReport, error)
	SendReport(ctx context.Context, payload models.SubmissionPayload) (*models.SendResult, error)
	SaveCredentials(ctx context.Context, employeeCode, employeePass string) error
}

type Context struct {
	Store    *entrystore.Store
	Tracker  *tracker.Tracker
	Cache    *projectcache.Cache
	API      Service
	KV       storage.KV
	Identity string

	// StorePath is the storage file backing KV, used for backups.
	StorePath string
}

// RequireIdentity scopes the entry store to the signed-in identity, failing
// when nobody is signed in.
func (c *Context) RequireIdentity() (string, error) {
	if c.Identity == "" {
		return "", fmt.Errorf("not signed in, run 'dayhive login' first")
	}
	c.Store.SetIdentity(c.Identity)
	return c.Identity, nil
}

// LoadIdentity reads the remembered identity from storage. An empty string
// means nobody is signed in.
func LoadIdentity(ctx context.Context, kv storage.KV) (string, error) {
	raw, err := kv.Get(ctx, identityKey)
	if err != nil {
		return "", fmt.Errorf("load identity: %w", err)
	}
	return string(raw), nil
}

func parseDateArg(s string) (string, error) {
	if s == "" || s == "today" {
		return time.Now().Format(constants.DateLayout), nil
	}
	if _, err := time.Parse(constants.DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

func parseClockArg(s string) error {
	if _, err := time.Parse(constants.ClockLayout, s); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM: %w", err)
	}
	return nil
}

// combineDateClock builds a local timestamp from a YYYY-MM-DD date and an
// HH:MM clock.
func combineDateClock(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateLayout+" "+constants.ClockLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t, nil
}

func formatDuration(d time.Duration) string {
	totalMinutes := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60)
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func entryLine(e models.TimeEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s–", e.StartTime.Format(constants.ClockLayout))
	if e.Completed() {
		fmt.Fprintf(&b, "%s  %-30s  %s", e.EndTime.Format(constants.ClockLayout), e.ProjectName, formatDuration(e.Duration()))
	} else {
		fmt.Fprintf(&b, "…      %-30s  [tracking]", e.ProjectName)
	}
	return b.String()
}

func findProject(projects []models.Project, code string) (models.Project, error) {
	for _, p := range projects {
		if p.Code == code {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("unknown project code %q, run 'dayhive projects' to list", code)
}
