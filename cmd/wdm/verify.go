package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVerifyCmd creates `wdm verify <path>`.
func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <path>",
		Short: "Check that a chromedriver executable runs",
		Args:  cobra.ExactArgs(1),
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

			if err := m.VerifyDriver(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s: ok\n", args[0])
			return nil
		},
	}
}
