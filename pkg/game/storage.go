package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/thryce/site/pkg/utils"
)

// OpenStorage 打开 gdata 跨平台存储
//
// 打开失败时返回 nil 管理器和错误，调用方可以继续以降级模式（仅内存）运行。
func OpenStorage(appName string, logger *zap.Logger) (*gdata.Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if appName == "" {
		return nil, fmt.Errorf("storage app name is empty")
	}

	// Android 上 gdata 不会预先创建存储目录
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare storage dir: %w", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage %q: %w", appName, err)
	}
	logger.Named("Storage").Debug("storage opened", zap.String("app", appName))
	return manager, nil
}
