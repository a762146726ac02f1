package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hidewatch/hidewatch/configs"
	"github.com/hidewatch/hidewatch/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the .hidewatch.yaml configuration file.

The file lives in the directory hidewatch is started from and holds
the same settings the flags do. Precedence from lowest to highest:
built-in defaults, the file, HIDEWATCH_* environment variables,
command-line flags.`,
		Example: `  # Write an annotated starter file to the working directory
  hidewatch config init

  # Print the effective configuration after all layers are merged
  hidewatch config show`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Write an annotated .hidewatch.yaml to the working directory.

Every value in the starter file matches the built-in defaults, so the
file changes nothing until edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the configuration
file and environment variables, in the same YAML shape the file uses.

The result is shown as-is, without validation, so it also works while
a configuration is still being put together.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file to load (default: .hidewatch.yaml in the working directory)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	path := filepath.Join(dir, ".hidewatch.yaml")

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists. Use --force to overwrite it.\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s. Enable watch or immediate mode and set your filters there.\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, configFile string) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	cfg, err := config.Load(dir, configFile)
	if err != nil {
		return err
	}
	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
