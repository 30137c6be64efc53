// Package dns writes a systemd-resolved drop-in for the configured
// nameservers and restarts the resolver.
package dns

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lutra-tools/fedup/internal/config"
	"github.com/lutra-tools/fedup/internal/ui"
	"github.com/lutra-tools/fedup/internal/utils"
)

const (
	dropInDir  = "/etc/systemd/resolved.conf.d"
	dropInFile = "90-fedup.conf"
)

type Configurator struct {
	run      utils.Runner
	runInput utils.InputRunner
}

func New() *Configurator {
	return &Configurator{
		run:      utils.RunCommand,
		runInput: utils.RunCommandWithInput,
	}
}

// Render produces the resolved.conf drop-in body for the given settings.
func Render(d config.DNS) string {
	var b strings.Builder
	b.WriteString("[Resolve]\n")
	b.WriteString("DNS=" + strings.Join(d.Servers, " ") + "\n")
	if len(d.Domains) > 0 {
		b.WriteString("Domains=" + strings.Join(d.Domains, " ") + "\n")
	}
	return b.String()
}

// Apply writes the drop-in through sudo tee and restarts systemd-resolved.
// Any failure aborts the run.
func (c *Configurator) Apply(ctx context.Context, st *ui.Status, d config.DNS) error {
	if len(d.Servers) == 0 {
		st.Infof("No DNS servers configured, leaving resolver untouched")
		return nil
	}

	if _, err := c.run(ctx, "sudo", "mkdir", "-p", dropInDir); err != nil {
		return fmt.Errorf("create %s: %w", dropInDir, err)
	}
	path := filepath.Join(dropInDir, dropInFile)
	if _, err := c.runInput(ctx, Render(d), "sudo", "tee", path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := c.run(ctx, "sudo", "systemctl", "restart", "systemd-resolved"); err != nil {
		return fmt.Errorf("restart systemd-resolved: %w", err)
	}
	st.Successf("DNS set to %s", strings.Join(d.Servers, ", "))
	return nil
}
