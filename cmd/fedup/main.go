package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/lutra-tools/fedup/internal/config"
	"github.com/lutra-tools/fedup/internal/desktop"
	"github.com/lutra-tools/fedup/internal/dnf"
	"github.com/lutra-tools/fedup/internal/dns"
	"github.com/lutra-tools/fedup/internal/flatpak"
	"github.com/lutra-tools/fedup/internal/fonts"
	"github.com/lutra-tools/fedup/internal/installer"
	"github.com/lutra-tools/fedup/internal/platform"
	"github.com/lutra-tools/fedup/internal/provision"
	"github.com/lutra-tools/fedup/internal/ui"
	"github.com/lutra-tools/fedup/internal/utils"
)

func main() {
	_ = godotenv.Load()

	out := zerolog.NewConsoleWriter()
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cmd := &cli.Command{
		Name:  "fedup",
		Usage: "Post-install setup for a Fedora desktop",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Usage:   "provisioning profile",
				Value:   config.DefaultPath,
				Aliases: []string{"f"},
			},
			&cli.StringFlag{
				Name:  "pkg-file",
				Usage: "optional dnf package manifest",
				Value: "pkg.txt",
			},
			&cli.StringFlag{
				Name:  "fpk-file",
				Usage: "optional flatpak manifest",
				Value: "fpk.txt",
			},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
			&cli.BoolFlag{Name: "dry-run", Usage: "print commands instead of running them"},
		},
		Commands: []*cli.Command{
			runCommand(),
			installCommand(),
			updateCommand(),
			fontsCommand(),
			dnsCommand(),
			tweaksCommand(),
			initCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("fedup aborted")
	}
}

// setup wires the global flags into the context and status writer every
// subcommand shares.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, *ui.Status) {
	opts := utils.ExecOptions{
		Verbose: cmd.Bool("verbose"),
		Quiet:   cmd.Bool("quiet"),
		DryRun:  cmd.Bool("dry-run"),
	}
	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return utils.WithExecOptions(ctx, opts), ui.New(opts.Quiet)
}

// loadProfile falls back to the built-in profile when fedup.yml is
// absent; any other load error is fatal.
func loadProfile(st *ui.Status, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			st.Warnf("%s not found, using built-in profile", path)
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the full provisioning pipeline",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "run even on an unsupported platform"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, st := setup(ctx, cmd)
			cfg, err := loadProfile(st, cmd.String("file"))
			if err != nil {
				return err
			}

			st.Infof("Provisioning profile: %s", utils.WithDefault(cfg.Name, "unnamed"))

			if info := platform.Detect(); !info.Supported() {
				if !cmd.Bool("force") {
					return fmt.Errorf("unsupported platform %s/%s (family %s); use --force to override", info.OS, info.Distro, info.Family)
				}
				st.Warnf("Unsupported platform %s, continuing because of --force", info.Distro)
			}

			native := dnf.New()
			flat := flatpak.New()
			fontMgr, err := fonts.NewManager()
			if err != nil {
				return err
			}
			pkgFile := cmd.String("pkg-file")
			fpkFile := cmd.String("fpk-file")

			// Batch stages are fail-soft: the summary is collected, the
			// stage itself never errors. Everything else is fail-fast.
			var total installer.Summary
			batch := func(inst installer.Installer, ids []string) func(context.Context) error {
				return func(ctx context.Context) error {
					total = total.Merge(installer.Batch(ctx, st, inst, ids))
					return nil
				}
			}
			batchManifest := func(inst installer.Installer, path string) func(context.Context) error {
				return func(ctx context.Context) error {
					sum, err := installer.BatchManifest(ctx, st, inst, path)
					total = total.Merge(sum)
					return err
				}
			}

			stages := []provision.Stage{
				{Name: "System update", Run: native.Upgrade},
				{Name: "Enable RPM Fusion", Run: func(ctx context.Context) error {
					// FEDUP_RELEASEVER (or .env) overrides the profile.
					return native.EnableRPMFusion(ctx, utils.FirstNonEmpty(os.Getenv("FEDUP_RELEASEVER"), cfg.ReleaseVer))
				}},
				{Name: "Enable Flathub", Run: func(ctx context.Context) error {
					return flat.EnsureRemote(ctx, flatpak.FlathubRemote, flatpak.FlathubURL)
				}},
				{Name: "System packages", Run: batch(native, cfg.System)},
				{Name: "Package groups", Run: func(ctx context.Context) error {
					return native.InstallGroups(ctx, cfg.Groups)
				}},
				{Name: "Required packages", Run: batch(native, cfg.Packages)},
				{Name: "Packages from " + pkgFile, Run: batchManifest(native, pkgFile)},
				{Name: "Flatpak applications", Run: batch(flat, cfg.Flatpak)},
				{Name: "Flatpaks from " + fpkFile, Run: batchManifest(flat, fpkFile)},
				{Name: "Additional applications", Run: batch(native, cfg.Extras)},
				{Name: "Fonts", Run: func(ctx context.Context) error {
					return fontMgr.InstallAll(ctx, st, cfg.Fonts)
				}},
				{Name: "DNS", Run: func(ctx context.Context) error {
					return dns.New().Apply(ctx, st, cfg.DNS)
				}},
				{Name: "Desktop tweaks", Run: func(ctx context.Context) error {
					return desktop.New().ApplyTweaks(ctx, st, cfg.Tweaks)
				}},
				{Name: "Services", Run: func(ctx context.Context) error {
					return desktop.New().EnableServices(ctx, st, cfg.Services)
				}},
			}
			if err := provision.Run(ctx, st, stages); err != nil {
				return err
			}

			if total.Failed > 0 {
				st.Warnf("%d packages installed, %d skipped: %s",
					total.Installed, total.Failed, strings.Join(total.FailedIDs, ", "))
			} else {
				st.Successf("%d packages installed", total.Installed)
			}
			st.Successf("Provisioning complete 🎉")
			return nil
		},
	}
}

func installCommand() *cli.Command {
	return &cli.Command{
		Name:    "install",
		Aliases: []string{"i"},
		Usage:   "Install packages ad hoc, tolerating per-package failures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Usage:   "[dnf|flatpak]",
				Value:   "dnf",
				Aliases: []string{"t"},
				Validator: func(t string) error {
					switch t {
					case "dnf", "flatpak":
						return nil
					default:
						return fmt.Errorf("invalid package type: %s", t)
					}
				},
			},
		},
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "package",
				Min:  0,
				Max:  50,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, st := setup(ctx, cmd)
			names := cmd.StringArgs("package")
			if len(names) == 0 {
				return fmt.Errorf("no package specified")
			}

			var inst installer.Installer
			switch cmd.String("type") {
			case "flatpak":
				flat := flatpak.New()
				if err := flat.EnsureRemote(ctx, flatpak.FlathubRemote, flatpak.FlathubURL); err != nil {
					return err
				}
				inst = flat
			default:
				inst = dnf.New()
			}

			sum := installer.Batch(ctx, st, inst, names)
			st.Infof("%d installed, %d skipped", sum.Installed, sum.Failed)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:    "update",
		Aliases: []string{"u"},
		Usage:   "Update the whole system",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, st := setup(ctx, cmd)
			st.Infof("Updating system")
			if err := dnf.New().Upgrade(ctx); err != nil {
				return err
			}
			st.Successf("System up to date")
			return nil
		},
	}
}

func fontsCommand() *cli.Command {
	return &cli.Command{
		Name:  "fonts",
		Usage: "Install the configured fonts",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, st := setup(ctx, cmd)
			cfg, err := loadProfile(st, cmd.String("file"))
			if err != nil {
				return err
			}
			mgr, err := fonts.NewManager()
			if err != nil {
				return err
			}
			return mgr.InstallAll(ctx, st, cfg.Fonts)
		},
	}
}

func dnsCommand() *cli.Command {
	return &cli.Command{
		Name:  "dns",
		Usage: "Apply the configured DNS servers to systemd-resolved",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, st := setup(ctx, cmd)
			cfg, err := loadProfile(st, cmd.String("file"))
			if err != nil {
				return err
			}
			return dns.New().Apply(ctx, st, cfg.DNS)
		},
	}
}

func tweaksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tweaks",
		Usage: "Apply desktop tweaks and enable services",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, st := setup(ctx, cmd)
			cfg, err := loadProfile(st, cmd.String("file"))
			if err != nil {
				return err
			}
			d := desktop.New()
			if err := d.ApplyTweaks(ctx, st, cfg.Tweaks); err != nil {
				return err
			}
			return d.EnableServices(ctx, st, cfg.Services)
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write the built-in profile to fedup.yml as a starting point",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, st := setup(ctx, cmd)
			path := cmd.String("file")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			st.Successf("Wrote %s", path)
			return nil
		},
	}
}
