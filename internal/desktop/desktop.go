// Package desktop applies gsettings tweaks and enables background
// services. Both are fail-fast setup steps.
package desktop

import (
	"context"
	"fmt"

	"github.com/lutra-tools/fedup/internal/config"
	"github.com/lutra-tools/fedup/internal/ui"
	"github.com/lutra-tools/fedup/internal/utils"
)

type Configurator struct {
	run utils.Runner
}

func New() *Configurator {
	return &Configurator{run: utils.RunCommand}
}

func (c *Configurator) ApplyTweaks(ctx context.Context, st *ui.Status, tweaks []config.Tweak) error {
	for _, t := range tweaks {
		if _, err := c.run(ctx, "gsettings", "set", t.Schema, t.Key, t.Value); err != nil {
			return fmt.Errorf("gsettings set %s %s: %w", t.Schema, t.Key, err)
		}
		st.Infof("Set %s %s = %s", t.Schema, t.Key, t.Value)
	}
	return nil
}

func (c *Configurator) EnableServices(ctx context.Context, st *ui.Status, services []string) error {
	for _, svc := range services {
		if _, err := c.run(ctx, "sudo", "systemctl", "enable", "--now", svc); err != nil {
			return fmt.Errorf("enable %s: %w", svc, err)
		}
		st.Successf("Enabled %s", svc)
	}
	return nil
}
