package deadlines

import (
	"time"

	"github.com/chxlky/onelook/internal/models"
)

// Seed returns the first-run examples, due relative to now so they always look upcoming.
func Seed(now time.Time, newID func() string) []models.Assignment {
	return []models.Assignment{
		{
			ID:     newID(),
			Title:  "HW1: Probability Review",
			Course: "CIS 519",
			Source: models.SourceCanvas,
			Due:    models.NewDueTime(now.Add(48 * time.Hour)),
			Link:   "https://canvas.example/hw1",
		},
		{
			ID:     newID(),
			Title:  "PA0: Setup + Git",
			Course: "CIS 121",
			Source: models.SourceGradescope,
			Due:    models.NewDueTime(now.Add(4 * 24 * time.Hour)),
			Link:   "https://gradescope.example/pa0",
		},
		{
			ID:     newID(),
			Title:  "Reading Quiz 1",
			Course: "ESE 5420",
			Source: models.SourceCanvas,
			Due:    models.NewDueTime(now.Add(36 * time.Hour)),
		},
	}
}
