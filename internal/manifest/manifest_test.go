package manifest_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lutra-tools/fedup/internal/manifest"
)

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	in := "git\n# comment\n\nvim\n"
	ids, err := manifest.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"git", "vim"}, ids)
}

func TestParseTrimsWhitespace(t *testing.T) {
	in := "  git  \n\t# indented comment\n"
	ids, err := manifest.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"git"}, ids)
}

func TestParseKeepsOrderAndDuplicates(t *testing.T) {
	in := "b\na\nb\n"
	ids, err := manifest.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "b"}, ids)
}

func TestParseOnlyCommentsAndBlanks(t *testing.T) {
	in := "# one\n\n# two\n   \n"
	ids, err := manifest.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.txt")
	require.NoError(t, os.WriteFile(path, []byte("git\n# comment\n\nvim\n"), 0o644))

	ids, err := manifest.Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"git", "vim"}, ids)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
