// Package config loads the fedup.yml provisioning profile.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "fedup.yml"

type Config struct {
	Name       string `yaml:"name,omitempty"`
	ReleaseVer string `yaml:"releasever,omitempty"` // resolved via rpm -E %fedora when empty

	// Package lists, installed in this order. All of them are fail-soft.
	System   []string `yaml:"system"`
	Packages []string `yaml:"packages"`
	Groups   []string `yaml:"groups,omitempty"`
	Flatpak  []string `yaml:"flatpak"`
	Extras   []string `yaml:"extras,omitempty"`

	Fonts    []Font   `yaml:"fonts,omitempty"`
	DNS      DNS      `yaml:"dns,omitempty"`
	Tweaks   []Tweak  `yaml:"tweaks,omitempty"`
	Services []string `yaml:"services,omitempty"`
}

type Font struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type DNS struct {
	Servers []string `yaml:"servers,omitempty"`
	Domains []string `yaml:"domains,omitempty"`
}

type Tweak struct {
	Schema string `yaml:"schema"`
	Key    string `yaml:"key"`
	Value  string `yaml:"value"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Default is the built-in profile used when no fedup.yml is present.
func Default() *Config {
	return &Config{
		Name: "Fedora Desktop",
		System: []string{
			"dnf-plugins-core",
			"util-linux-user",
			"unzip",
			"curl",
		},
		Packages: []string{
			"git",
			"vim-enhanced",
			"zsh",
			"htop",
			"fastfetch",
		},
		Groups: []string{
			"multimedia",
		},
		Flatpak: []string{
			"com.spotify.Client",
			"com.discordapp.Discord",
			"org.videolan.VLC",
		},
		Extras: []string{
			"gimp",
			"inkscape",
		},
		Fonts: []Font{
			{
				Name: "JetBrainsMono",
				URL:  "https://github.com/ryanoasis/nerd-fonts/releases/latest/download/JetBrainsMono.zip",
			},
		},
		DNS: DNS{
			Servers: []string{"1.1.1.1", "1.0.0.1"},
		},
		Tweaks: []Tweak{
			{Schema: "org.gnome.desktop.interface", Key: "monospace-font-name", Value: "JetBrainsMono Nerd Font 11"},
			{Schema: "org.gnome.software", Key: "download-updates", Value: "false"},
			{Schema: "org.gnome.software", Key: "download-updates-notify", Value: "false"},
		},
		Services: []string{
			"fstrim.timer",
		},
	}
}
