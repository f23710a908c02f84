package platform

import "github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"

// identifiers maps os/arch pairs to manifest platform identifiers.
var identifiers = map[[2]string]string{
	{OSWindows, ArchX86_64}: "win64",
	{OSWindows, ArchX86}:    "win32",
	{OSMacOS, ArchX86_64}:   "mac-x64",
	{OSMacOS, ArchAArch64}:  "mac-arm64",
	{OSLinux, ArchX86_64}:   "linux64",
}

// Identifier maps an operating system and CPU architecture to the
// manifest's platform identifier. Unmapped pairs fail with an
// UnsupportedPlatform error.
func Identifier(os, arch string) (string, error) {
	if id, ok := identifiers[[2]string{os, arch}]; ok {
		return id, nil
	}
	return "", errdefs.UnsupportedPlatform(os, arch)
}
