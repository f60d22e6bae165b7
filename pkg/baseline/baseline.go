// Package baseline persists the warning ids of a run so later runs can be
// compared against it: which warnings are new, which were resolved.
package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/swiftconcur/parser/pkg/warning"
)

// Current schema version - increment when the payload format changes.
const schemaVersion uint16 = 1

// payload is the on-disk artifact.
type payload struct {
	Schema    uint16
	CreatedAt time.Time
	CommitSHA string
	IDs       []string
}

// Baseline is a loaded set of warning ids from a previous run.
type Baseline struct {
	CreatedAt time.Time
	CommitSHA string
	ids       map[string]struct{}
}

// Diff is the result of comparing a run against a baseline.
type Diff struct {
	// New are warnings in the current run absent from the baseline.
	New []warning.Warning
	// Resolved are baseline ids no longer present in the current run.
	Resolved []string
}

// Save writes the run's warning ids to path. The write is atomic: a temp
// file in the same directory is renamed over the target.
func Save(path string, run *warning.Run) error {
	ids := make([]string, 0, len(run.Warnings))
	for _, w := range run.Warnings {
		ids = append(ids, w.ID)
	}

	data, err := msgpack.Marshal(payload{
		Schema:    schemaVersion,
		CreatedAt: run.CreatedAt,
		CommitSHA: run.CommitSHA,
		IDs:       ids,
	})
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".baseline-*")
	if err != nil {
		return fmt.Errorf("create baseline temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write baseline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close baseline: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace baseline: %w", err)
	}
	return nil
}

// Load reads a baseline artifact from path.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}

	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode baseline: %w", err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("baseline schema %d not supported (want %d)", p.Schema, schemaVersion)
	}

	ids := make(map[string]struct{}, len(p.IDs))
	for _, id := range p.IDs {
		ids[id] = struct{}{}
	}
	return &Baseline{CreatedAt: p.CreatedAt, CommitSHA: p.CommitSHA, ids: ids}, nil
}

// Len returns the number of warning ids in the baseline.
func (b *Baseline) Len() int { return len(b.ids) }

// Compare diffs the current run against the baseline.
func (b *Baseline) Compare(run *warning.Run) Diff {
	var diff Diff

	current := make(map[string]struct{}, len(run.Warnings))
	for _, w := range run.Warnings {
		current[w.ID] = struct{}{}
		if _, known := b.ids[w.ID]; !known {
			diff.New = append(diff.New, w)
		}
	}
	for id := range b.ids {
		if _, still := current[id]; !still {
			diff.Resolved = append(diff.Resolved, id)
		}
	}
	sort.Strings(diff.Resolved)
	return diff
}
