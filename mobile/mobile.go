//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.thryce.site -o build/android/thryce.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Thryce.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"go.uber.org/zap"

	"github.com/thryce/site/pkg/app"
	"github.com/thryce/site/pkg/config"
	"github.com/thryce/site/pkg/embedded"
	"github.com/thryce/site/pkg/game"
	"github.com/thryce/site/pkg/observability"
)

func init() {
	embedded.Init(assetsFS)

	cfg, err := config.Load(config.LoadOptions{Defaults: embedded.SiteConfig()})
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	logger := observability.InitializeLogger(cfg.Logger, true)

	// 移动端存储不可用时以内存模式运行
	manager, err := game.OpenStorage(cfg.Theme.AppName, logger)
	if err != nil {
		logger.Warn("theme storage unavailable", zap.Error(err))
	}

	siteApp, err := app.New(app.Options{
		Config:   cfg,
		Themes:   game.NewThemeStore(manager, cfg.DefaultTheme(), logger),
		Logger:   logger,
		SetTitle: func(string) {},
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(siteApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
