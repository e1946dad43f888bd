package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thryce/site/pkg/app"
	"github.com/thryce/site/pkg/game"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the site in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := opts.openThemes()
			if err != nil {
				// 没有存储也能运行，只是主题不会保存
				opts.logger.Warn("theme storage unavailable, preference will not persist", zap.Error(err))
				themes = game.NewThemeStore(nil, opts.cfg.DefaultTheme(), opts.logger)
			}
			return app.Run(app.Options{
				Config:    opts.cfg,
				Themes:    themes,
				StartPage: page,
				Logger:    opts.logger,
			})
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", "", "start page route, e.g. /services")
	return cmd
}
