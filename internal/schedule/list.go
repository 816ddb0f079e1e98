package schedule

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wrenholt/autolight/internal/models"
)

// TrackedSchedule pairs a schedule with an opaque identifier that is stable
// for the whole edit session. The identifier exists only in memory; it is
// minted when the entry is first seen and carried with the record until the
// entry is removed, it is never derived from the entry's position.
type TrackedSchedule struct {
	ID string
	models.Schedule
}

// List holds the editable schedule list between a load and the next save.
// Edits address entries by identifier so they stay correct while the list
// is reordered or shrunk underneath the UI.
type List struct {
	entries []TrackedSchedule
}

// NewList adopts a wire-format schedule list, minting an identifier per entry.
func NewList(schedules []models.Schedule) *List {
	l := &List{}
	l.Replace(schedules)
	return l
}

// Replace discards all entries and identifiers and adopts the given list
// wholesale. Used when a load succeeds and the draft is rebuilt.
func (l *List) Replace(schedules []models.Schedule) {
	l.entries = lo.Map(schedules, func(sch models.Schedule, _ int) TrackedSchedule {
		return TrackedSchedule{ID: mintID(), Schedule: sch}
	})
}

// Reconcile adopts a new version of the list produced by a whole-state
// mutation. Entries sharing an index with the previous version keep their
// identifier, appended entries get fresh ones, identifiers past the new
// length are discarded.
func (l *List) Reconcile(schedules []models.Schedule) {
	next := make([]TrackedSchedule, len(schedules))
	for i, sch := range schedules {
		if i < len(l.entries) {
			next[i] = TrackedSchedule{ID: l.entries[i].ID, Schedule: sch}
		} else {
			next[i] = TrackedSchedule{ID: mintID(), Schedule: sch}
		}
	}
	l.entries = next
}

// Add appends a schedule with a freshly minted identifier.
func (l *List) Add(sch models.Schedule) TrackedSchedule {
	entry := TrackedSchedule{ID: mintID(), Schedule: sch}
	l.entries = append(l.entries, entry)
	return entry
}

// Update applies a patch to the entry with the given identifier.
// Returns false if no entry has that identifier.
func (l *List) Update(id string, patch func(*models.Schedule)) bool {
	for i := range l.entries {
		if l.entries[i].ID == id {
			patch(&l.entries[i].Schedule)
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given identifier. The identifiers of
// every other entry are untouched.
func (l *List) Remove(id string) bool {
	_, index, found := lo.FindIndexOf(l.entries, func(e TrackedSchedule) bool {
		return e.ID == id
	})
	if !found {
		return false
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return true
}

// Get returns the entry with the given identifier.
func (l *List) Get(id string) (TrackedSchedule, bool) {
	return lo.Find(l.entries, func(e TrackedSchedule) bool {
		return e.ID == id
	})
}

// Entries returns the tracked entries in array order.
func (l *List) Entries() []TrackedSchedule {
	out := make([]TrackedSchedule, len(l.entries))
	copy(out, l.entries)
	return out
}

// Flatten strips the identifiers and returns the wire-format list in the
// current array order, ready for transmission.
func (l *List) Flatten() []models.Schedule {
	return lo.Map(l.entries, func(e TrackedSchedule, _ int) models.Schedule {
		return e.Schedule
	})
}

func (l *List) Len() int {
	return len(l.entries)
}

func mintID() string {
	return uuid.NewString()
}
