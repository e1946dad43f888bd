// Package cli 提供 thryce 命令行入口
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thryce/site/pkg/config"
	"github.com/thryce/site/pkg/embedded"
	"github.com/thryce/site/pkg/game"
	"github.com/thryce/site/pkg/observability"
	"github.com/thryce/site/pkg/systems"
)

// Version 构建时通过 -ldflags "-X github.com/thryce/site/pkg/cli.Version=..." 设置
var Version = "dev"

// rootOptions 所有子命令共享的状态
// cfg 和 logger 在 PersistentPreRunE 中填充
type rootOptions struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd 创建完整的命令树
// 每次调用都返回独立的实例，测试之间互不影响
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "thryce",
		Short:         "Thryce studio site: particle backdrop, pointer cursor and contact relay.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize()
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file merged over the built-in defaults")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(
		newRunCmd(opts),
		newTermCmd(opts),
		newThemeCmd(opts),
		newContactCmd(opts),
	)
	return root
}

// Execute 运行命令，收到 SIGINT/SIGTERM 时取消 context
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// initialize 加载配置并初始化日志
func (o *rootOptions) initialize() error {
	cfg, err := config.Load(config.LoadOptions{
		Defaults: embedded.SiteConfig(),
		File:     o.cfgFile,
	})
	if err != nil {
		return err
	}
	if o.verbose {
		cfg.Logger.Level = "debug"
	}
	o.cfg = cfg
	o.logger = observability.InitializeLogger(cfg.Logger, o.verbose)
	o.logger.Debug("config loaded", zap.String("file", o.cfgFile), zap.String("version", Version))
	return nil
}

// openThemes 打开持久化存储并创建 ThemeStore
// 存储不可用时返回错误（由调用方决定是否降级）
func (o *rootOptions) openThemes() (*game.ThemeStore, error) {
	manager, err := game.OpenStorage(o.cfg.Theme.AppName, o.logger)
	if err != nil {
		return nil, err
	}
	return game.NewThemeStore(manager, o.cfg.DefaultTheme(), o.logger), nil
}

// fieldOptions 配置中的粒子场参数；Scheduler 和 Viewport 由渲染端提供
func (o *rootOptions) fieldOptions(palettes systems.Palettes) systems.FieldOptions {
	fc := o.cfg.Field
	return systems.FieldOptions{
		Population: fc.Population,
		MinRadius:  fc.MinRadius,
		MaxRadius:  fc.MaxRadius,
		MaxSpeed:   fc.MaxSpeed,
		Palettes:   palettes,
		Logger:     o.logger,
	}
}
