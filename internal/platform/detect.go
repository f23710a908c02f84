package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	goos   string
	goarch string

	kernelArch   func() (string, error)
	distribution func(ctx context.Context) (platform, family, version string, err error)
}

// NewDetector creates a new platform detector for the running process.
func NewDetector() Detector {
	return &RealDetector{
		goos:         runtime.GOOS,
		goarch:       runtime.GOARCH,
		kernelArch:   host.KernelArch,
		distribution: host.PlatformInformationWithContext,
	}
}

// Detect performs platform detection and returns platform information.
// OS and architecture come from runtime.GOOS and runtime.GOARCH. gopsutil
// supplies the kernel architecture and, on Linux, the distribution details.
//
// Detection never fails for an unknown OS or architecture; such values are
// kept as-is and rejected later by Identifier. Failures to read kernel or
// distro details are not fatal unless the context was cancelled.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      normalizeOS(d.goos),
		Arch:    normalizeArch(d.goarch),
		ArchRaw: d.goarch,
	}

	if d.kernelArch != nil {
		if arch, err := d.kernelArch(); err == nil {
			info.KernelArch = arch
		}
	}

	if info.IsLinux() && d.distribution != nil {
		platform, family, version, err := d.distribution(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		platform = normalizePlatform(platform)
		if platform != "" {
			info.Platform = platform
			info.Family = mapFamily(family)
			info.Version = normalizePlatform(version)
		}
	}

	return info, nil
}
