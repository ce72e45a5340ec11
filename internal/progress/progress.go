// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress persists append-only snapshots of each collection
// cycle. Snapshots exist for auditing and resumption reporting only;
// the next cycle always re-derives its state from the record store, so
// a missing or corrupt snapshot never blocks collection.
package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/unifin/pkg/types"
)

// ErrCorruptSnapshot is returned by LoadLatest when every persisted
// snapshot fails to decode. Callers treat it as "no snapshot".
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

const snapshotPrefix = "progress_"

// Tracker reads and writes snapshots under a single directory.
type Tracker struct {
	dir string
	log *zap.Logger
}

// NewTracker returns a Tracker over the given snapshot directory.
func NewTracker(dir string, log *zap.Logger) *Tracker {
	return &Tracker{dir: dir, log: log}
}

// Record persists a snapshot to a new file and returns its path. Prior
// snapshots are never overwritten: the filename carries a UTC stamp and
// creation is exclusive, with a numeric suffix on collision.
func (t *Tracker) Record(snap types.Snapshot) (string, error) {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", eris.Wrap(err, "marshaling snapshot")
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "creating snapshot dir %s", t.dir)
	}

	stamp := snap.Timestamp.UTC().Format("20060102T150405Z")
	for n := 0; ; n++ {
		name := snapshotPrefix + stamp + ".yaml"
		if n > 0 {
			name = fmt.Sprintf("%s%s_%d.yaml", snapshotPrefix, stamp, n)
		}
		path := filepath.Join(t.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", eris.Wrapf(err, "creating snapshot %s", path)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", eris.Wrapf(err, "writing snapshot %s", path)
		}
		if err := f.Close(); err != nil {
			return "", eris.Wrapf(err, "closing snapshot %s", path)
		}
		return path, nil
	}
}

// LoadLatest returns the newest readable snapshot, or nil when the
// directory holds none. Corrupt files are skipped with a warning; only
// when every file is corrupt does it return ErrCorruptSnapshot.
func (t *Tracker) LoadLatest() (*types.Snapshot, error) {
	paths, err := t.List()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	sawCorrupt := false
	for i := len(paths) - 1; i >= 0; i-- {
		snap, err := load(paths[i])
		if err != nil {
			sawCorrupt = true
			t.log.Warn("skipping unreadable snapshot",
				zap.String("path", paths[i]),
				zap.Error(err))
			continue
		}
		return snap, nil
	}
	if sawCorrupt {
		return nil, eris.Wrapf(ErrCorruptSnapshot, "no readable snapshot in %s", t.dir)
	}
	return nil, nil
}

// List returns every snapshot path in the directory, oldest first.
// Filenames sort chronologically because they embed a UTC stamp.
func (t *Tracker) List() ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "reading snapshot dir %s", t.dir)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(t.dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func load(path string) (*types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap types.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.RunID == "" && snap.Timestamp.IsZero() {
		return nil, errors.New("snapshot missing run id and timestamp")
	}
	return &snap, nil
}
