// Package binary downloads, unpacks, locates and verifies driver
// executables.
//
// # Installation
//
// Installer.Install runs the acquisition steps in order, each exactly once:
//  1. create a private temp dir (removed again before Install returns)
//  2. stream the archive into it through a .tmp file renamed on success
//  3. extract the zip into the install directory on a Pool worker
//  4. walk the install directory for the driver executable
//
// Nothing is retried and nothing is cached; an installation into a
// directory that already holds a driver overwrites the files it extracts.
//
// # Archive Safety
//
// Extraction never writes outside the install directory. Entries with an
// absolute name, a volume name or a ".." component are skipped with a
// warning rather than failing the whole archive.
//
// # Verification
//
// Verifier runs the installed driver once with a version flag and checks
// that it exits 0 with the expected marker in its output.
//
// # Usage
//
//	inst := binary.NewInstaller(binary.InstallerConfig{Logger: logger})
//	driver, err := inst.Install(ctx, url, "/opt/drivers", "chromedriver")
//	if err != nil {
//	    return err
//	}
//	if err := binary.NewVerifier("ChromeDriver").Verify(ctx, driver.ExecutablePath); err != nil {
//	    return err
//	}
package binary
