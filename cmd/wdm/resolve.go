package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/browser"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
)

// resolveFlags are shared by the commands that only consult the manifest.
type resolveFlags struct {
	target string
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.target, "platform", "", "resolve for os/arch (e.g. linux/x86_64) instead of this host")
}

// detector returns the host detector, or a fixed one when --platform is set.
func (f *resolveFlags) detector(a *app) (platform.Detector, error) {
	if f.target == "" {
		return a.detector, nil
	}
	info, err := platform.ParseTarget(f.target)
	if err != nil {
		return nil, err
	}
	return platform.StaticDetector{Info: info}, nil
}

// hostLocator returns the browser locator for the machine wdm runs on.
func (f *resolveFlags) hostLocator(ctx context.Context, a *app) (browser.Locator, error) {
	host, err := a.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	locator, err := browser.ForOS(host)
	if err != nil {
		return nil, fmt.Errorf("create browser locator: %w", err)
	}
	return locator, nil
}

// newDriverVersionCmd creates `wdm driver-version [browser-version]`.
func newDriverVersionCmd(a *app) *cobra.Command {
	var (
		flags       resolveFlags
		browserPath string
	)

	cmd := &cobra.Command{
		Use:   "driver-version [browser-version]",
		Short: "Print the chromedriver version matching a Chrome version",
		Long: `Print the newest manifest chromedriver release in the same major line
as the given Chrome version. Without an argument the installed Chrome is
queried.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			detector, err := flags.detector(a)
			if err != nil {
				return err
			}
			s, err := a.open(ctx, detector)
			if err != nil {
				return err
			}
			if len(args) == 0 && flags.target != "" {
				// chrome is queried on this host, not on the pinned target
				if s.locator, err = flags.hostLocator(ctx, a); err != nil {
					return err
				}
			}
			m, err := s.chromeDriver()
			if err != nil {
				return err
			}

			var browserVersion string
			if len(args) == 1 {
				browserVersion = args[0]
			} else {
				if browserPath == "" {
					browserPath = s.cfg.BrowserPath(browser.Chrome.String())
				}
				if browserVersion, err = m.BrowserVersion(ctx, browserPath); err != nil {
					return fmt.Errorf("detect browser version: %w", err)
				}
			}

			version, err := m.DriverVersion(ctx, browserVersion)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, version)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&browserPath, "browser-path", "", "browser executable to query instead of searching")
	return cmd
}

// newDownloadURLCmd creates `wdm download-url <driver-version>`.
func newDownloadURLCmd(a *app) *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "download-url <driver-version>",
		Short: "Print the chromedriver archive URL for a driver version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			detector, err := flags.detector(a)
			if err != nil {
				return err
			}
			s, err := a.open(ctx, detector)
			if err != nil {
				return err
			}
			m, err := s.chromeDriver()
			if err != nil {
				return err
			}

			url, err := m.DownloadURL(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, url)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
