// Package platform provides platform detection and the mapping from an
// (operating system, architecture) pair to the platform identifier used by
// the chrome-for-testing version manifest.
//
// Operating systems and architectures are named the way the manifest's
// documentation names them ("windows", "macos", "linux"; "x86_64", "x86",
// "aarch64"), not the way GOOS and GOARCH spell them. The detector performs
// that translation. On Linux it also records distribution details from
// gopsutil, falling back gracefully when they cannot be read, and the whole
// Info is exposed to Lua configuration as a read-only platform table.
package platform

import (
	"context"
	"fmt"
	"strings"
)

// Operating system names.
const (
	OSWindows = "windows"
	OSMacOS   = "macos"
	OSLinux   = "linux"
)

// Architecture names.
const (
	ArchX86_64  = "x86_64"
	ArchX86     = "x86"
	ArchAArch64 = "aarch64"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info contains platform detection information.
type Info struct {
	OS         string // "windows", "macos", "linux" (or the raw GOOS when unknown)
	Arch       string // "x86_64", "x86", "aarch64" (or the raw GOARCH when unknown)
	ArchRaw    string // original GOARCH (e.g., "amd64", "arm64")
	KernelArch string // machine hardware name reported by the kernel, may be empty
	Platform   string // distro ID (Linux only, e.g., "ubuntu", "arch")
	Family     string // canonical family (e.g., "debian", "rhel", "arch")
	Version    string // distro version (Linux only, e.g., "22.04")
}

// Distro contains Linux distribution information.
// This is nil on non-Linux platforms.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != OSLinux || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSMacOS
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsAppleSilicon returns true if running on Apple Silicon (macOS + aarch64).
func (i *Info) IsAppleSilicon() bool {
	return i.OS == OSMacOS && i.Arch == ArchAArch64
}

// Identifier returns the manifest platform identifier for this platform.
func (i *Info) Identifier() (string, error) {
	return Identifier(i.OS, i.Arch)
}

// ExecutableName appends the platform's executable suffix to name.
func (i *Info) ExecutableName(name string) string {
	if i.IsWindows() {
		return name + ".exe"
	}
	return name
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector is a Detector that always reports the same Info.
// It is used to pin the platform when resolving for another machine.
type StaticDetector struct {
	Info *Info
}

// Detect returns a copy of the configured Info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := *s.Info
	return &info, nil
}

// ParseTarget parses an "os/arch" pair such as "linux/x86_64" or
// "darwin/arm64" into an Info. GOOS/GOARCH spellings are accepted.
// The pair is not checked against the manifest; Identifier does that.
func ParseTarget(s string) (*Info, error) {
	osName, arch, ok := strings.Cut(s, "/")
	if !ok || strings.TrimSpace(osName) == "" || strings.TrimSpace(arch) == "" {
		return nil, fmt.Errorf("invalid platform %q (want os/arch, e.g. linux/x86_64)", s)
	}
	return &Info{
		OS:      normalizeOS(osName),
		Arch:    normalizeArch(arch),
		ArchRaw: strings.TrimSpace(arch),
	}, nil
}
