package deadlines

import (
	"errors"
	"time"

	"github.com/chxlky/onelook/internal/models"
)

type mapKV map[string][]byte

func (m mapKV) Get(key string) ([]byte, error) { return m[key], nil }

func (m mapKV) Put(key string, value []byte) error {
	m[key] = append([]byte(nil), value...)
	return nil
}

type brokenKV struct{ err error }

func (b brokenKV) Get(string) ([]byte, error) { return nil, b.err }
func (b brokenKV) Put(string, []byte) error   { return b.err }

var errDiskFull = errors.New("disk full")

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustDue(s string) models.DueTime {
	d, err := models.ParseDue(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ids(items []models.Assignment) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}
