package migration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEntity is returned when a counter is touched for an entity name
// that was never registered. Auto-registering here would mask driver ordering
// bugs, so the stats fail loudly instead.
var ErrUnknownEntity = errors.New("entity not registered in migration stats")

// EntityStats holds the per-entity counters for one migration run.
type EntityStats struct {
	SheetRows int
	Migrated  int
	Errors    int
	Skipped   int
}

// Stats accumulates per-entity outcomes and renders the final report.
// It is not safe for concurrent use; migration passes run strictly
// sequentially, so no locking is needed.
type Stats struct {
	order   []string
	entries map[string]*EntityStats
}

// NewStats creates an empty stats accumulator.
func NewStats() *Stats {
	return &Stats{entries: make(map[string]*EntityStats)}
}

// AddEntity registers a counter bucket for name. Registering the same name
// again is a no-op and never resets existing counts.
func (s *Stats) AddEntity(name string) {
	if _, ok := s.entries[name]; ok {
		return
	}
	s.entries[name] = &EntityStats{}
	s.order = append(s.order, name)
}

// SetSheetCount records how many source rows were read for the entity.
func (s *Stats) SetSheetCount(name string, count int) error {
	entry, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	entry.SheetRows = count
	return nil
}

// RecordSuccess increments the migrated counter for the entity.
func (s *Stats) RecordSuccess(name string) error {
	entry, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	entry.Migrated++
	return nil
}

// RecordError increments the error counter for the entity.
func (s *Stats) RecordError(name string) error {
	entry, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	entry.Errors++
	return nil
}

// RecordSkip increments the skipped counter for the entity.
func (s *Stats) RecordSkip(name string) error {
	entry, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	entry.Skipped++
	return nil
}

// Entity returns a copy of the counters for name.
func (s *Stats) Entity(name string) (EntityStats, bool) {
	entry, ok := s.entries[name]
	if !ok {
		return EntityStats{}, false
	}
	return *entry, true
}

// Report renders a human-readable accounting of the run. The output is a pure
// function of the accumulated counters: entities appear in registration order
// and there are no timestamps, so repeated calls produce identical text.
func (s *Stats) Report() string {
	var b strings.Builder

	divider := strings.Repeat("=", 50)
	b.WriteString(divider + "\n")
	b.WriteString("MIGRATION REPORT\n")
	b.WriteString(divider + "\n")

	var totalRows, totalMigrated, totalErrors, totalSkipped int
	for _, name := range s.order {
		entry := s.entries[name]
		b.WriteString("\n" + strings.ToUpper(name) + "\n")
		fmt.Fprintf(&b, "  %-13s%d\n", "Sheet rows:", entry.SheetRows)
		fmt.Fprintf(&b, "  %-13s%d\n", "Migrated:", entry.Migrated)
		fmt.Fprintf(&b, "  %-13s%d\n", "Errors:", entry.Errors)
		fmt.Fprintf(&b, "  %-13s%d\n", "Skipped:", entry.Skipped)

		totalRows += entry.SheetRows
		totalMigrated += entry.Migrated
		totalErrors += entry.Errors
		totalSkipped += entry.Skipped
	}

	b.WriteString("\n" + strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "TOTAL: %d rows read, %d migrated, %d errors, %d skipped\n",
		totalRows, totalMigrated, totalErrors, totalSkipped)

	return b.String()
}
