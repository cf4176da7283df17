package deadlines

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/chxlky/onelook/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewAssignment is raw user input for Create; strings are trimmed there.
type NewAssignment struct {
	Title  string
	Course string
	Source models.Source
	Due    models.DueTime
	Link   string
}

// Tracker owns the in-memory collection and mirrors every change to its Persister.
type Tracker struct {
	mu    sync.Mutex
	items []models.Assignment
	store Persister
	clock func() time.Time
	newID func() string
}

// Open loads the collection, seeding and saving the examples when nothing is stored yet.
func Open(store Persister, clock func() time.Time) (*Tracker, error) {
	if clock == nil {
		clock = time.Now
	}
	t := &Tracker{
		store: store,
		clock: clock,
		newID: uuid.NewString,
	}

	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	t.items = items
	if len(t.items) > 0 {
		zap.L().Info("Loaded assignments", zap.Int("count", len(t.items)))
		return t, nil
	}

	t.items = Seed(clock(), t.newID)
	if err := store.Save(t.items); err != nil {
		return nil, fmt.Errorf("unable to persist seed assignments: %w", err)
	}
	zap.L().Info("Seeded example assignments", zap.Int("count", len(t.items)))
	return t, nil
}

func (t *Tracker) Now() time.Time { return t.clock() }

// All returns a copy of the collection in storage order.
func (t *Tracker) All() []models.Assignment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.items)
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

func (t *Tracker) View(f Filter) []models.Assignment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return View(t.items, f, t.clock())
}

func (t *Tracker) Create(in NewAssignment) (models.Assignment, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Assignment{}, ErrTitleRequired
	}
	course := strings.TrimSpace(in.Course)
	if course == "" {
		return models.Assignment{}, ErrCourseRequired
	}
	if !in.Source.Valid() {
		return models.Assignment{}, ErrInvalidSource
	}
	if in.Due.IsZero() {
		return models.Assignment{}, ErrDueRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	a := models.Assignment{
		ID:     t.uniqueID(),
		Title:  title,
		Course: course,
		Source: in.Source,
		Due:    in.Due,
		Link:   strings.TrimSpace(in.Link),
	}

	next := append(slices.Clone(t.items), a)
	if err := t.store.Save(next); err != nil {
		return models.Assignment{}, err
	}
	t.items = next

	zap.L().Debug("Assignment created", zap.String("id", a.ID), zap.String("title", a.Title), zap.String("due", a.Due.String()))
	return a, nil
}

// Remove deletes the assignment with the given id and reports whether it existed.
// An unknown id is not an error; the collection is still saved.
func (t *Tracker) Remove(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(t.items), func(a models.Assignment) bool {
		return a.ID == id
	})
	if err := t.store.Save(next); err != nil {
		return false, err
	}
	removed := len(next) != len(t.items)
	if removed {
		zap.L().Debug("Assignment removed", zap.String("id", id))
	}
	t.items = next
	return removed, nil
}

func (t *Tracker) uniqueID() string {
	for {
		id := t.newID()
		if !slices.ContainsFunc(t.items, func(a models.Assignment) bool { return a.ID == id }) {
			return id
		}
	}
}
