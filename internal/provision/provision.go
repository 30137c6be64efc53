// Package provision runs the ordered setup pipeline. Stages are
// fail-fast: the first error aborts everything after it. Per-package
// tolerance lives inside installer.Batch, not here.
package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lutra-tools/fedup/internal/ui"
)

type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

func Run(ctx context.Context, st *ui.Status, stages []Stage) error {
	for _, s := range stages {
		st.Infof("%s", s.Name)
		start := time.Now()
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		log.Debug().Str("stage", s.Name).Dur("took", time.Since(start)).Msg("stage completed")
	}
	return nil
}
