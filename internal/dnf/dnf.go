// Package dnf drives the native Fedora package manager.
package dnf

import (
	"context"
	"fmt"
	"strings"

	"github.com/lutra-tools/fedup/internal/utils"
)

const (
	rpmFusionFreeURL    = "https://mirrors.rpmfusion.org/free/fedora/rpmfusion-free-release-%s.noarch.rpm"
	rpmFusionNonfreeURL = "https://mirrors.rpmfusion.org/nonfree/fedora/rpmfusion-nonfree-release-%s.noarch.rpm"
)

type Driver struct {
	run utils.Runner
}

func New() *Driver {
	return &Driver{run: utils.RunCommand}
}

func (d *Driver) Name() string { return "dnf" }

// Install installs a single package. Already-installed packages are a
// fast no-op via rpm -q, skipping the sudo round-trip.
func (d *Driver) Install(ctx context.Context, pkg string) error {
	if d.IsInstalled(ctx, pkg) {
		return nil
	}
	_, err := d.run(ctx, "sudo", "dnf", "install", "-y", pkg)
	return err
}

func (d *Driver) IsInstalled(ctx context.Context, pkg string) bool {
	// A dry run short-circuits every command to success, which would make
	// every package look installed and hide the install command. Skip the
	// fast path so the plan still shows it.
	if utils.GetExecOptions(ctx).DryRun {
		return false
	}
	_, err := d.run(ctx, "rpm", "-q", pkg)
	return err == nil
}

// Upgrade refreshes metadata and updates the whole system.
func (d *Driver) Upgrade(ctx context.Context) error {
	_, err := d.run(ctx, "sudo", "dnf", "upgrade", "-y", "--refresh")
	return err
}

func (d *Driver) InstallGroups(ctx context.Context, groups []string) error {
	if len(groups) == 0 {
		return nil
	}
	args := append([]string{"dnf", "group", "install", "-y"}, groups...)
	_, err := d.run(ctx, "sudo", args...)
	return err
}

// ReleaseVer asks rpm for the running Fedora release number.
func (d *Driver) ReleaseVer(ctx context.Context) (string, error) {
	out, err := d.run(ctx, "rpm", "-E", "%fedora")
	if err != nil {
		return "", fmt.Errorf("detect releasever: %w", err)
	}
	ver := strings.TrimSpace(out)
	if ver == "" || ver == "%fedora" {
		return "", fmt.Errorf("detect releasever: rpm returned %q", ver)
	}
	return ver, nil
}

// EnableRPMFusion installs the free and nonfree release packages for the
// given releasever, detecting it when empty.
func (d *Driver) EnableRPMFusion(ctx context.Context, releasever string) error {
	if releasever == "" {
		var err error
		releasever, err = d.ReleaseVer(ctx)
		if err != nil {
			return err
		}
	}
	free := fmt.Sprintf(rpmFusionFreeURL, releasever)
	nonfree := fmt.Sprintf(rpmFusionNonfreeURL, releasever)
	_, err := d.run(ctx, "sudo", "dnf", "install", "-y", free, nonfree)
	return err
}
