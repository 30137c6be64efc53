// Package fonts downloads font archives and installs them into the user
// font directory. Every failure here is fatal to the run; fonts are part
// of the fail-fast setup pipeline.
package fonts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/lutra-tools/fedup/internal/config"
	"github.com/lutra-tools/fedup/internal/ui"
	"github.com/lutra-tools/fedup/internal/utils"
)

type Manager struct {
	client *http.Client
	run    utils.Runner

	FontsDir string
	CacheDir string
}

func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	return &Manager{
		client:   &http.Client{Timeout: 120 * time.Second},
		run:      utils.RunCommand,
		FontsDir: filepath.Join(home, ".local", "share", "fonts"),
		CacheDir: filepath.Join(home, ".cache", "fedup", "fonts"),
	}, nil
}

// InstallAll installs every configured font and refreshes the font cache
// once at the end. The first failure aborts.
func (m *Manager) InstallAll(ctx context.Context, st *ui.Status, fonts []config.Font) error {
	if len(fonts) == 0 {
		return nil
	}
	for _, f := range fonts {
		if err := m.Install(ctx, st, f); err != nil {
			return err
		}
	}
	st.Infof("Refreshing font cache")
	if _, err := m.run(ctx, "fc-cache", "-f"); err != nil {
		return fmt.Errorf("fc-cache: %w", err)
	}
	return nil
}

func (m *Manager) Install(ctx context.Context, st *ui.Status, f config.Font) error {
	// A dry run must not touch the filesystem or the network.
	if utils.GetExecOptions(ctx).DryRun {
		st.Infof("[dry-run] would download %s and install into %s", f.URL, filepath.Join(m.FontsDir, f.Name))
		return nil
	}
	if err := os.MkdirAll(m.CacheDir, 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}

	archive, err := m.cachePath(f)
	if err != nil {
		return err
	}
	if _, err := os.Stat(archive); err != nil {
		st.Infof("Downloading font %s", f.Name)
		if err := m.download(ctx, f.URL, archive); err != nil {
			return fmt.Errorf("download %s: %w", f.Name, err)
		}
	}

	dest := filepath.Join(m.FontsDir, f.Name)
	if err := Extract(archive, dest); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	st.Successf("Installed font %s", f.Name)
	return nil
}

func (m *Manager) cachePath(f config.Font) (string, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return "", fmt.Errorf("font %s: bad url: %w", f.Name, err)
	}
	base := path.Base(u.Path)
	if base == "" || base == "/" || base == "." {
		return "", fmt.Errorf("font %s: url has no file name", f.Name)
	}
	return filepath.Join(m.CacheDir, base), nil
}

// download fetches url into dest, writing a .part file first so an
// interrupted transfer never leaves a truncated archive behind.
func (m *Manager) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("User-Agent", "fedup/1.0")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %s", resp.Status)
	}

	tmp := dest + ".part"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
