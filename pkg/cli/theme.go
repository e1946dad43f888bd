package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thryce/site/pkg/types"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect or change the persisted theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTheme(cmd, opts)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the persisted theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printTheme(cmd, opts)
			},
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Persist the given theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(types.ThemeLight), string(types.ThemeDark)},
			RunE: func(cmd *cobra.Command, args []string) error {
				theme := types.Theme(args[0])
				if !theme.Valid() {
					return fmt.Errorf("unknown theme %q (want light or dark)", args[0])
				}
				themes, err := opts.openThemes()
				if err != nil {
					return err
				}
				if err := themes.Set(theme); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), themes.Theme())
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				themes, err := opts.openThemes()
				if err != nil {
					return err
				}
				next, err := themes.Toggle()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), next)
				return nil
			},
		},
	)
	return cmd
}

func printTheme(cmd *cobra.Command, opts *rootOptions) error {
	themes, err := opts.openThemes()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), themes.Theme())
	return nil
}
