package binary

// InstalledDriver describes the result of an installation
type InstalledDriver struct {
	// ExecutablePath is the driver executable, always under the install directory
	ExecutablePath string
	// ArchivePath is where the archive was downloaded; it no longer exists
	// once Install returns
	ArchivePath string
	// TempDir is the private working directory, removed before Install returns
	TempDir string
}
