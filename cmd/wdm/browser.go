package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/browser"
)

// newBrowserVersionCmd creates `wdm browser-version`.
func newBrowserVersionCmd(a *app) *cobra.Command {
	var (
		name        string
		browserPath string
	)

	cmd := &cobra.Command{
		Use:   "browser-version",
		Short: "Print the version of an installed browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			browserName, err := browser.ParseName(name)
			if err != nil {
				return err
			}
			s, err := a.open(ctx, a.detector)
			if err != nil {
				return err
			}
			locator, err := browser.ForOS(s.platform)
			if err != nil {
				return err
			}

			if browserPath == "" {
				browserPath = s.cfg.BrowserPath(browserName.String())
			}
			id, err := browser.Detect(ctx, locator, browserName, browserPath)
			if err != nil {
				return err
			}
			s.logger.Debug("detected browser", "browser", id.Name, "path", id.Path)

			fmt.Fprintln(a.stdout, id.Version)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "browser", "b", browser.Chrome.String(), "browser to query ("+browser.JoinNames(", ")+")")
	cmd.Flags().StringVar(&browserPath, "browser-path", "", "browser executable to query instead of searching")
	return cmd
}
