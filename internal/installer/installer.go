// Package installer holds the batch install routine shared by every
// package source: try each identifier once, in order, and never let one
// failure abort the rest.
package installer

import (
	"context"
	"errors"
	"io/fs"

	"github.com/rs/zerolog/log"

	"github.com/lutra-tools/fedup/internal/manifest"
	"github.com/lutra-tools/fedup/internal/ui"
)

// Installer is the capability the batch routine needs from a package
// manager: install one identifier, report success or failure.
type Installer interface {
	Name() string
	Install(ctx context.Context, id string) error
}

type Summary struct {
	Installed int
	Failed    int
	FailedIDs []string
}

func (s Summary) Merge(o Summary) Summary {
	// Fresh slice: appending onto s.FailedIDs could clobber its backing
	// array when s is merged more than once.
	ids := make([]string, 0, len(s.FailedIDs)+len(o.FailedIDs))
	ids = append(append(ids, s.FailedIDs...), o.FailedIDs...)
	if len(ids) == 0 {
		ids = nil
	}
	return Summary{
		Installed: s.Installed + o.Installed,
		Failed:    s.Failed + o.Failed,
		FailedIDs: ids,
	}
}

// Batch applies inst to each id in order, strictly sequentially; the
// underlying package manager locks shared system state, so items never
// run concurrently. A failing id is reported as a warning and skipped.
// An empty list is a no-op.
func Batch(ctx context.Context, st *ui.Status, inst Installer, ids []string) Summary {
	var sum Summary
	for _, id := range ids {
		if err := inst.Install(ctx, id); err != nil {
			log.Debug().Err(err).Str("installer", inst.Name()).Str("pkg", id).Msg("install failed")
			st.Warnf("Failed to install %s, skipping...", id)
			sum.Failed++
			sum.FailedIDs = append(sum.FailedIDs, id)
			continue
		}
		st.Successf("Installed %s", id)
		sum.Installed++
	}
	return sum
}

// BatchManifest runs Batch with ids read from a manifest file. A missing
// file skips the batch with a warning; any other read error propagates.
func BatchManifest(ctx context.Context, st *ui.Status, inst Installer, path string) (Summary, error) {
	ids, err := manifest.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			st.Warnf("%s not found, skipping %s manifest batch", path, inst.Name())
			return Summary{}, nil
		}
		return Summary{}, err
	}
	return Batch(ctx, st, inst, ids), nil
}
