package deadlines

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/chxlky/onelook/internal/models"
)

// SourceAll disables the source filter.
const SourceAll models.Source = "All"

const window = 7 * 24 * time.Hour

type Filter struct {
	Search    string
	Source    models.Source
	Next7Only bool
}

// ParseSourceFilter accepts "All" (or empty) as well as any known source label.
func ParseSourceFilter(s string) (models.Source, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(SourceAll)) {
		return SourceAll, nil
	}
	src, err := models.ParseSource(s)
	if err != nil {
		return "", fmt.Errorf("source filter: %w", err)
	}
	return src, nil
}

// View filters and orders a copy of all. The input slice is left untouched.
func View(all []models.Assignment, f Filter, now time.Time) []models.Assignment {
	rows := make([]models.Assignment, 0, len(all))

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	limit := now.Add(window)

	for _, a := range all {
		if needle != "" && !matches(a, needle) {
			continue
		}
		if f.Source != "" && f.Source != SourceAll && a.Source != f.Source {
			continue
		}
		if f.Next7Only && a.Due.Time().After(limit) {
			continue
		}
		rows = append(rows, a)
	}

	slices.SortStableFunc(rows, func(a, b models.Assignment) int {
		return a.Due.Compare(b.Due)
	})
	return rows
}

func matches(a models.Assignment, needle string) bool {
	for _, field := range a.SearchText() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// DaysLeft is the ceiling of the remaining time in whole days; zero or negative once due.
func DaysLeft(due models.DueTime, now time.Time) int {
	days := due.Time().Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
)

func UrgencyFor(daysLeft int) Urgency {
	switch {
	case daysLeft <= 1:
		return UrgencyCritical
	case daysLeft <= 3:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

func DaysLeftLabel(daysLeft int) string {
	switch {
	case daysLeft <= 0:
		return "Due today"
	case daysLeft == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", daysLeft)
	}
}
