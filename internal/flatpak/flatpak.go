// Package flatpak drives the flatpak package manager against the
// configured remote.
package flatpak

import (
	"context"

	"github.com/lutra-tools/fedup/internal/utils"
)

const (
	FlathubRemote = "flathub"
	FlathubURL    = "https://dl.flathub.org/repo/flathub.flatpakrepo"
)

type Driver struct {
	run    utils.Runner
	remote string
}

func New() *Driver {
	return &Driver{run: utils.RunCommand, remote: FlathubRemote}
}

func (d *Driver) Name() string { return "flatpak" }

// EnsureRemote registers the remote if it is not already configured.
func (d *Driver) EnsureRemote(ctx context.Context, name, url string) error {
	_, err := d.run(ctx, "flatpak", "remote-add", "--if-not-exists", name, url)
	return err
}

func (d *Driver) Install(ctx context.Context, id string) error {
	_, err := d.run(ctx, "flatpak", "install", "-y", "--noninteractive", d.remote, id)
	return err
}
