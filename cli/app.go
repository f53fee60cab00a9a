// ABOUTME: Shared context for CLI commands
// ABOUTME: Carries repositories, resolver labels, logger and output writer
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
)

// App is what every command needs to reach the CRM.
type App struct {
	Repos    *repository.Set
	Labels   resolve.Labels
	PageSize int
	Logger   *log.Logger
	Out      io.Writer
	Now      func() time.Time
}

// NewApp returns an App writing to stdout.
func NewApp(repos *repository.Set, labels resolve.Labels, pageSize int, logger *log.Logger) *App {
	return &App{
		Repos:    repos,
		Labels:   labels,
		PageSize: pageSize,
		Logger:   logger,
		Out:      os.Stdout,
		Now:      time.Now,
	}
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Out, format, args...)
}

func (a *App) ctx() context.Context {
	return context.Background()
}

func newFlagSet(a *App, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Out)
	return fs
}

// setFlags reports which flags were passed explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// idArg parses the single positional id argument.
func idArg(fs *flag.FlagSet, entity string) (uuid.UUID, error) {
	if fs.NArg() < 1 {
		return uuid.Nil, fmt.Errorf("%s ID is required", entity)
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", entity, err)
	}
	return id, nil
}

func optionalID(value, entity string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s ID: %w", entity, err)
	}
	return &id, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339. Date-only values are read in
// local time.
func parseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", value)
	}
	return t, nil
}

func formatMoney(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
