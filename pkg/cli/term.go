package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thryce/site/pkg/app"
	"github.com/thryce/site/pkg/game"
	"github.com/thryce/site/pkg/terminal"
)

func newTermCmd(opts *rootOptions) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Render the site in the terminal",
		Long: `Render the site in the terminal.

Keys: 1-5 switch pages, t toggles the theme, q / Esc / Ctrl-C quit.
The mouse drives the cursor; clicking links navigates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := opts.openThemes()
			if err != nil {
				opts.logger.Warn("theme storage unavailable, preference will not persist", zap.Error(err))
				themes = game.NewThemeStore(nil, opts.cfg.DefaultTheme(), opts.logger)
			}
			palettes, err := app.FieldPalettes(opts.cfg.Field)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create terminal screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal screen: %w", err)
			}
			defer screen.Fini()

			runner := terminal.NewRunner(screen, terminal.Options{
				Terminal:      opts.cfg.Terminal,
				Field:         opts.fieldOptions(palettes),
				Themes:        themes,
				StartPage:     page,
				CursorEnabled: opts.cfg.Cursor.Enabled,
				Logger:        opts.logger,
			})
			return runner.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", "", "start page route, e.g. /projects")
	return cmd
}
