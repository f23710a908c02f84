package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newPlatformCmd creates `wdm platform`, which prints the detected host.
func newPlatformCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the detected platform and its manifest identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.detector.Detect(cmd.Context())
			if err != nil {
				return fmt.Errorf("detect platform: %w", err)
			}

			id, idErr := info.Identifier()
			if idErr != nil {
				id = "unsupported"
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "os:\t%s\n", info.OS)
			fmt.Fprintf(w, "arch:\t%s (%s)\n", info.Arch, info.ArchRaw)
			if info.KernelArch != "" {
				fmt.Fprintf(w, "kernel arch:\t%s\n", info.KernelArch)
			}
			if distro := info.GetDistro(); distro != nil {
				fmt.Fprintf(w, "distro:\t%s %s (%s)\n", distro.ID, distro.Version, distro.Family)
			}
			fmt.Fprintf(w, "identifier:\t%s\n", id)
			if err := w.Flush(); err != nil {
				return err
			}

			return idErr
		},
	}
}
