package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/mistype/internal/model"
)

// Artifact names written per mutated unit.
const (
	metadataFileName = "metadata.json"
	diffFileName     = "patch.diff"
	mutatedFileName  = "mutated.py"
)

// RecordStore persists and retrieves mutation runs. Each run is stored in
// its own directory keyed by (source path, strategy, content hash) and
// holds the record metadata, a unified diff and the rewritten source.
type RecordStore interface {
	// SaveRun persists one run under out and returns the directory it was
	// written to.
	SaveRun(out m.Path, run m.FileRun) (m.Path, error)

	// LoadRuns loads every run previously saved under out, ordered by
	// directory path.
	LoadRuns(out m.Path) ([]m.FileRun, error)
}

type fileRecordStore struct {
	fs SourceFSAdapter
}

// NewRecordStore constructs a RecordStore backed by the provided filesystem
// adapter.
func NewRecordStore(fs SourceFSAdapter) RecordStore {
	return &fileRecordStore{fs: fs}
}

func (rs *fileRecordStore) SaveRun(out m.Path, run m.FileRun) (m.Path, error) {
	if run.Source.Origin == nil {
		return "", errors.New("missing source origin")
	}

	key := fmt.Sprintf("%s__%s", run.Strategy, shortHash(run.Source.Origin.Hash))
	dir := rs.fs.JoinPath(string(out), sanitizePath(run.Source.Origin.Path), key)

	if err := rs.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create record dir: %w", err)
	}

	metadata, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	if err := rs.fs.WriteFile(rs.fs.JoinPath(string(dir), metadataFileName), metadata, 0o600); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	if err := rs.fs.WriteFile(rs.fs.JoinPath(string(dir), diffFileName), []byte(run.Diff), 0o600); err != nil {
		return "", fmt.Errorf("write diff: %w", err)
	}

	if err := rs.fs.WriteFile(rs.fs.JoinPath(string(dir), mutatedFileName), run.Rewritten, 0o600); err != nil {
		return "", fmt.Errorf("write mutated source: %w", err)
	}

	return dir, nil
}

func (rs *fileRecordStore) LoadRuns(out m.Path) ([]m.FileRun, error) {
	if _, err := rs.fs.FileInfo(out); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	var runs []m.FileRun

	err := rs.fs.Walk(out, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Base(path) != metadataFileName {
			return nil
		}

		run, loadErr := rs.loadRun(path)
		if loadErr != nil {
			return loadErr
		}

		runs = append(runs, run)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Source.Origin.Path != runs[j].Source.Origin.Path {
			return runs[i].Source.Origin.Path < runs[j].Source.Origin.Path
		}

		return runs[i].Strategy < runs[j].Strategy
	})

	return runs, nil
}

func (rs *fileRecordStore) loadRun(metadataPath string) (m.FileRun, error) {
	data, err := rs.fs.ReadFile(m.Path(metadataPath))
	if err != nil {
		return m.FileRun{}, fmt.Errorf("read metadata %s: %w", metadataPath, err)
	}

	var run m.FileRun
	if err := json.Unmarshal(data, &run); err != nil {
		return m.FileRun{}, fmt.Errorf("decode metadata %s: %w", metadataPath, err)
	}

	if run.Source.Origin == nil {
		return m.FileRun{}, fmt.Errorf("metadata %s has no source origin", metadataPath)
	}

	dir := filepath.Dir(metadataPath)

	if diff, err := rs.fs.ReadFile(rs.fs.JoinPath(dir, diffFileName)); err == nil {
		run.Diff = string(diff)
	}

	if rewritten, err := rs.fs.ReadFile(rs.fs.JoinPath(dir, mutatedFileName)); err == nil {
		run.Rewritten = rewritten
	}

	return run, nil
}

// sanitizePath flattens a source path into a single directory name so the
// artifact layout never escapes the output root.
func sanitizePath(p m.Path) string {
	s := filepath.ToSlash(string(p))
	s = strings.TrimPrefix(s, "/")

	return strings.ReplaceAll(s, "/", "__")
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}

	return hash
}
