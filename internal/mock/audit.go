package mock

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/trackside/internal/models"
)

// Journal is the server-side audit store: append-only, in memory, newest
// first. Entries are never edited or removed.
type Journal struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewJournal() *Journal {
	return &Journal{}
}

// Append assigns the server-side id and timestamp and prepends the entry.
func (j *Journal) Append(entry models.AuditLog) models.AuditLog {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now().UTC()
	if entry.Outcome == "" {
		entry.Outcome = models.AuditOutcomeSuccess
	}

	j.mu.Lock()
	j.entries = append([]models.AuditLog{entry}, j.entries...)
	j.mu.Unlock()
	return entry
}

// List returns entries matching the filter, sorted descending by timestamp.
// Zero filter values match everything.
func (j *Journal) List(filter models.AuditFilter) []models.AuditLog {
	j.mu.Lock()
	defer j.mu.Unlock()

	matched := make([]models.AuditLog, 0, len(j.entries))
	for _, entry := range j.entries {
		if !filter.StartDate.IsZero() && entry.Timestamp.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && entry.Timestamp.After(filter.EndDate) {
			continue
		}
		if len(filter.TrainIDs) > 0 && !slices.Contains(filter.TrainIDs, entry.TrainID) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched
}
