// Package platform detects the running distribution so provisioning can
// refuse to run on hosts it was not written for.
package platform

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

const (
	FamilyRHEL   = "rhel"
	FamilyDebian = "debian"
	FamilyArch   = "arch"
	FamilyOther  = "other"
)

type Info struct {
	OS     string
	Arch   string
	Distro string // distro ID from os-release, e.g. "fedora"
	Family string
}

// Supported reports whether fedup's dnf/systemd assumptions hold here.
func (i Info) Supported() bool {
	return i.OS == "linux" && i.Family == FamilyRHEL
}

var rhelIDs = set("fedora", "rhel", "rocky", "almalinux", "centos", "oracle")
var debianIDs = set("debian", "ubuntu", "linuxmint", "raspbian", "pop", "neon", "kali", "zorin", "elementary")
var archIDs = set("arch", "manjaro", "endeavouros")

func set(vals ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

func Detect() Info {
	distro := detectDistro()
	return Info{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		Distro: distro,
		Family: family(distro),
	}
}

func family(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if _, ok := rhelIDs[id]; ok {
		return FamilyRHEL
	}
	if _, ok := debianIDs[id]; ok {
		return FamilyDebian
	}
	if _, ok := archIDs[id]; ok {
		return FamilyArch
	}
	return FamilyOther
}

func detectDistro() string {
	if distro, found := findInFile("/etc/os-release", "ID="); found {
		return distro
	}
	if distro, found := findInFile("/etc/lsb-release", "DISTRIB_ID="); found {
		return distro
	}
	return FamilyOther
}

func findInFile(path, needle string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, needle) {
			find := strings.Trim(strings.TrimPrefix(line, needle), "\"")
			return strings.ToLower(strings.TrimSpace(find)), true
		}
	}
	return "", false
}
