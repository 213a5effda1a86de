package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/mistype/internal/model"
)

func sampleRun(strategy, hash string) m.FileRun {
	return m.FileRun{
		Source: m.Source{
			Origin: &m.File{Path: "/project/pkg/app.py", Hash: hash},
		},
		Strategy:   strategy,
		Seed:       42,
		Likelihood: 0.25,
		Records: []m.MutationRecord{{
			Strategy:    strategy,
			Explanation: "The type annotations in the code are likely incorrect.",
			SiteKind:    m.SiteParameter,
			Entity:      "calculate",
			Line:        3,
			Original:    "int",
			Rewritten:   "str",
		}},
		Diff:      "--- a/pkg/app.py\n+++ b/pkg/app.py\n",
		Rewritten: []byte("def calculate(x: str) -> int:\n    return x\n"),
	}
}

func TestRecordStore_SaveAndLoad(t *testing.T) {
	out := m.Path(t.TempDir())
	store := NewRecordStore(NewLocalSourceFSAdapter())

	run := sampleRun("func_pm_type_change", "abcdef0123456789")

	dir, err := store.SaveRun(out, run)
	require.NoError(t, err)
	assert.Contains(t, string(dir), "func_pm_type_change__abcdef01")

	loaded, err := store.LoadRuns(out)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, run.Source.Origin.Path, got.Source.Origin.Path)
	assert.Equal(t, run.Strategy, got.Strategy)
	assert.Equal(t, run.Seed, got.Seed)
	assert.Equal(t, run.Likelihood, got.Likelihood)
	require.Len(t, got.Records, 1)
	assert.Equal(t, run.Records[0], got.Records[0])

	// Diff and rewritten source come back from the sibling artifacts.
	assert.Equal(t, run.Diff, got.Diff)
	assert.Equal(t, run.Rewritten, got.Rewritten)
}

func TestRecordStore_LoadOrdersRuns(t *testing.T) {
	out := m.Path(t.TempDir())
	store := NewRecordStore(NewLocalSourceFSAdapter())

	remove := sampleRun("func_pm_type_remove", "1111222233334444")
	change := sampleRun("func_pm_type_change", "5555666677778888")

	_, err := store.SaveRun(out, remove)
	require.NoError(t, err)

	_, err = store.SaveRun(out, change)
	require.NoError(t, err)

	loaded, err := store.LoadRuns(out)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "func_pm_type_change", loaded[0].Strategy)
	assert.Equal(t, "func_pm_type_remove", loaded[1].Strategy)
}

func TestRecordStore_LoadMissingDirectory(t *testing.T) {
	store := NewRecordStore(NewLocalSourceFSAdapter())

	runs, err := store.LoadRuns("/nonexistent/out/dir")

	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordStore_SaveWithoutOriginFails(t *testing.T) {
	store := NewRecordStore(NewLocalSourceFSAdapter())

	_, err := store.SaveRun(m.Path(t.TempDir()), m.FileRun{Strategy: "func_pm_type_change"})

	require.Error(t, err)
}
