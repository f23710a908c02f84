package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/config"
)

// newConfigCmd creates `wdm config` and its subcommands.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the wdm config file",
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a))
	return cmd
}

// configFilePath returns the file `config init` writes.
func (a *app) configFilePath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	getenv := a.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if env := getenv(config.EnvConfig); env != "" {
		return env, nil
	}
	if path := config.DefaultPath(getenv); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("cannot determine config path; pass --config")
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file from the current flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFilePath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			code, err := config.NewGenerator().Generate(&config.Config{
				InstallDir:  a.installDir,
				ManifestURL: a.manifestURL,
			})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			fmt.Fprintf(a.stdout, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), a.detector)
			if err != nil {
				return err
			}

			code, err := config.NewGenerator().Generate(s.cfg)
			if err != nil {
				return err
			}
			source := s.source
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(a.stdout, "-- source: %s\n%s", source, code)
			return nil
		},
	}
}
