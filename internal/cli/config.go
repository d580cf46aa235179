package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"commitgen.dev/commitgen/internal/config"
	"commitgen.dev/commitgen/internal/runtime"
	"commitgen.dev/commitgen/internal/tui"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository configuration",
		Long: `Get and set repository configuration values.

Run without a subcommand to edit settings interactively.

Examples:
  commitgen config get model
  commitgen config set model qwen2.5-coder
  commitgen config set includeBody true
  commitgen config list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Splog.Close() }()

			if !tui.IsTTY() {
				printConfigList(rctx.Config)
				return nil
			}
			return runConfigEditor(rctx)
		},
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigListCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "get <key>",
		Short:             "Get a configuration value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}

			value, err := rctx.Config.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Println(value)
			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Set a configuration value",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Splog.Close() }()

			if err := rctx.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := rctx.Config.Save(rctx.RepoRoot); err != nil {
				return err
			}

			rctx.Splog.Info("Set %s to: %s", args[0], args[1])
			return nil
		},
	}

	return cmd
}

// newConfigListCmd creates the config list command
func newConfigListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every recognized configuration key and its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}

			printConfigList(rctx.Config)
			return nil
		},
	}

	return cmd
}

func printConfigList(cfg *config.Config) {
	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s=%s\n", key, value)
	}
}

// runConfigEditor loops a select-and-edit prompt over the recognized keys
// until the user picks Done.
func runConfigEditor(rctx *runtime.Context) error {
	keys := config.Keys()
	for {
		options := make([]string, 0, len(keys)+1)
		for _, key := range keys {
			value, _ := rctx.Config.Get(key)
			if value == "" {
				value = "(unset)"
			}
			options = append(options, fmt.Sprintf("%s: %s", key, value))
		}
		options = append(options, "Done")

		idx, err := tui.PromptSelect("Edit which setting?", options)
		if err != nil {
			return err
		}
		if idx == len(keys) {
			return nil
		}

		key := keys[idx]
		current, _ := rctx.Config.Get(key)
		value, err := tui.PromptInput(fmt.Sprintf("New value for %s", key), current)
		if err != nil {
			return err
		}

		if err := rctx.Config.Set(key, value); err != nil {
			rctx.Splog.Warn("%v", err)
			continue
		}
		if err := rctx.Config.Save(rctx.RepoRoot); err != nil {
			return err
		}
		rctx.Splog.Info("Set %s to: %s", key, value)
	}
}
