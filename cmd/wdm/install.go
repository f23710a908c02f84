package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/browser"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/driver"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/lock"
)

// newInstallCmd creates `wdm install`, which runs the full pipeline and
// prints the installed executable's path.
func newInstallCmd(a *app) *cobra.Command {
	var browserPath string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the chromedriver matching the local Chrome",
		Long: `Detect the installed Chrome, resolve the matching chromedriver from the
manifest, download and extract it into the install directory and verify it.
The path of the verified executable is printed on stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx, a.detector)
			if err != nil {
				return err
			}
			m, err := s.chromeDriver()
			if err != nil {
				return err
			}

			if browserPath == "" {
				browserPath = s.cfg.BrowserPath(browser.Chrome.String())
			}

			l, err := lock.Acquire(ctx, s.cfg.InstallDir)
			if err != nil {
				return fmt.Errorf("lock %s: %w", s.cfg.InstallDir, err)
			}
			defer func() {
				if err := l.Release(); err != nil {
					s.logger.Warn("failed to release install lock", "path", l.Path(), "error", err)
				}
			}()

			result, err := driver.Install(ctx, m, driver.Options{
				BrowserPath: browserPath,
				InstallDir:  s.cfg.InstallDir,
				Logger:      s.logger,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.stdout, result.ExecutablePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&browserPath, "browser-path", "", "browser executable to query instead of searching")
	return cmd
}
