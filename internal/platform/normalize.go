package platform

import (
	"strings"
)

// familyMap maps distribution names to their canonical family names.
// This is used to normalize variations of family strings from gopsutil.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian, // gopsutil might return ubuntu as family
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// normalizeOS converts GOOS values to manifest OS names.
// Unknown values are returned lowercased so Identifier can reject them.
func normalizeOS(goos string) string {
	switch goos := strings.ToLower(strings.TrimSpace(goos)); goos {
	case "darwin", "macos":
		return OSMacOS
	case "windows":
		return OSWindows
	case "linux":
		return OSLinux
	default:
		return goos
	}
}

// normalizeArch converts GOARCH and uname values to manifest architecture names.
// Unknown values are returned lowercased so Identifier can reject them.
func normalizeArch(arch string) string {
	switch arch := strings.ToLower(strings.TrimSpace(arch)); arch {
	case "amd64", "x86_64", "x64":
		return ArchX86_64
	case "386", "i386", "i686", "x86":
		return ArchX86
	case "arm64", "aarch64":
		return ArchAArch64
	default:
		return arch
	}
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}

	return FamilyUnknown
}
