package installer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lutra-tools/fedup/internal/installer"
	"github.com/lutra-tools/fedup/internal/ui"
)

type fakeInstaller struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeInstaller) Name() string { return "fake" }

func (f *fakeInstaller) Install(_ context.Context, id string) error {
	f.calls = append(f.calls, id)
	if f.fail[id] {
		return errors.New("mirror exploded")
	}
	return nil
}

func newStatus() (*ui.Status, *bytes.Buffer) {
	var buf bytes.Buffer
	return &ui.Status{Out: &buf, Err: &buf}, &buf
}

func TestBatchInvokesOncePerIDInOrder(t *testing.T) {
	st, _ := newStatus()
	inst := &fakeInstaller{fail: map[string]bool{"b": true}}

	sum := installer.Batch(context.Background(), st, inst, []string{"a", "b", "c"})

	require.Equal(t, []string{"a", "b", "c"}, inst.calls)
	require.Equal(t, 2, sum.Installed)
	require.Equal(t, 1, sum.Failed)
	require.Equal(t, []string{"b"}, sum.FailedIDs)
}

func TestBatchFailureIsIsolatedAndReported(t *testing.T) {
	st, buf := newStatus()
	inst := &fakeInstaller{fail: map[string]bool{"vim": true}}

	installer.Batch(context.Background(), st, inst, []string{"git", "vim"})

	require.Contains(t, buf.String(), "Installed git")
	require.Contains(t, buf.String(), "Failed to install vim, skipping...")
	require.NotContains(t, buf.String(), "Failed to install git")
}

func TestBatchAllFailuresStillCompletes(t *testing.T) {
	st, _ := newStatus()
	inst := &fakeInstaller{fail: map[string]bool{"a": true, "b": true}}

	sum := installer.Batch(context.Background(), st, inst, []string{"a", "b"})

	require.Equal(t, []string{"a", "b"}, inst.calls)
	require.Equal(t, 0, sum.Installed)
	require.Equal(t, []string{"a", "b"}, sum.FailedIDs)
}

func TestBatchEmptyInputIsNoop(t *testing.T) {
	st, buf := newStatus()
	inst := &fakeInstaller{}

	sum := installer.Batch(context.Background(), st, inst, nil)

	require.Empty(t, inst.calls)
	require.Equal(t, installer.Summary{}, sum)
	require.Empty(t, buf.String())
}

func TestBatchManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.txt")
	require.NoError(t, os.WriteFile(path, []byte("git\n# comment\n\nvim\n"), 0o644))

	st, _ := newStatus()
	inst := &fakeInstaller{}
	sum, err := installer.BatchManifest(context.Background(), st, inst, path)

	require.NoError(t, err)
	require.Equal(t, []string{"git", "vim"}, inst.calls)
	require.Equal(t, 2, sum.Installed)
}

func TestBatchManifestCommentsOnlyMeansZeroInvocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n\n"), 0o644))

	st, _ := newStatus()
	inst := &fakeInstaller{}
	sum, err := installer.BatchManifest(context.Background(), st, inst, path)

	require.NoError(t, err)
	require.Empty(t, inst.calls)
	require.Equal(t, installer.Summary{}, sum)
}

func TestBatchManifestMissingFileSkipsWithWarning(t *testing.T) {
	st, buf := newStatus()
	inst := &fakeInstaller{}
	sum, err := installer.BatchManifest(context.Background(), st, inst, filepath.Join(t.TempDir(), "pkg.txt"))

	require.NoError(t, err)
	require.Empty(t, inst.calls)
	require.Equal(t, installer.Summary{}, sum)
	require.Contains(t, buf.String(), "skipping fake manifest batch")
}

func TestSummaryMerge(t *testing.T) {
	a := installer.Summary{Installed: 2, Failed: 1, FailedIDs: []string{"x"}}
	b := installer.Summary{Installed: 1, Failed: 2, FailedIDs: []string{"y", "z"}}

	m := a.Merge(b)
	require.Equal(t, 3, m.Installed)
	require.Equal(t, 3, m.Failed)
	require.Equal(t, []string{"x", "y", "z"}, m.FailedIDs)
}

func TestSummaryMergeDoesNotAliasReceiver(t *testing.T) {
	// Spare capacity in the receiver's slice must not let a second merge
	// overwrite the result of the first.
	base := installer.Summary{FailedIDs: append(make([]string, 0, 8), "x")}

	first := base.Merge(installer.Summary{FailedIDs: []string{"y"}})
	second := base.Merge(installer.Summary{FailedIDs: []string{"z"}})

	require.Equal(t, []string{"x", "y"}, first.FailedIDs)
	require.Equal(t, []string{"x", "z"}, second.FailedIDs)
}
