package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/thryce/site/pkg/types"
)

// ThemePreference 持久化的主题偏好
// 这是站点唯一跨页面加载保留的状态
type ThemePreference struct {
	Theme types.Theme `yaml:"theme"`
}

// 存储路径常量
const (
	preferencesObject = "preferences"
	themeProperty     = "theme"
)

// ThemeStore 主题状态的唯一所有者
//
// 启动时从 gdata 读取一次，之后每次显式切换都写回存储并通知订阅者。
// 各组件通过依赖注入拿到同一个 ThemeStore，而不是各自重新读取存储。
type ThemeStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	theme        types.Theme
	fallback     types.Theme
	logger       *zap.Logger

	nextID      int
	subscribers []themeSubscriber
}

type themeSubscriber struct {
	id int
	fn func(types.Theme)
}

// NewThemeStore 创建主题存储并加载已保存的偏好
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//   - fallback: 没有保存偏好时使用的主题
//   - logger: 日志，可为 nil
//
// 加载失败不是致命错误，使用 fallback 并记录警告。
func NewThemeStore(gdataManager *gdata.Manager, fallback types.Theme, logger *zap.Logger) *ThemeStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !fallback.Valid() {
		fallback = types.ThemeLight
	}
	ts := &ThemeStore{
		gdataManager: gdataManager,
		theme:        fallback,
		fallback:     fallback,
		logger:       logger.Named("ThemeStore"),
	}

	if err := ts.Load(); err != nil {
		ts.logger.Warn("failed to load theme preference, using default",
			zap.Error(err), zap.String("theme", string(fallback)))
	}
	return ts
}

// Load 从 gdata 读取主题偏好
//
// 降级模式或没有保存过偏好时使用 fallback；不通知订阅者。
func (ts *ThemeStore) Load() error {
	if ts.gdataManager == nil {
		ts.theme = ts.fallback
		return nil
	}

	if !ts.gdataManager.ObjectPropExists(preferencesObject, themeProperty) {
		ts.theme = ts.fallback
		return nil
	}

	data, err := ts.gdataManager.LoadObjectProp(preferencesObject, themeProperty)
	if err != nil {
		ts.theme = ts.fallback
		return fmt.Errorf("failed to load theme preference: %w", err)
	}

	var pref ThemePreference
	if err := yaml.Unmarshal(data, &pref); err != nil {
		ts.theme = ts.fallback
		return fmt.Errorf("failed to unmarshal theme preference: %w", err)
	}
	if !pref.Theme.Valid() {
		ts.theme = ts.fallback
		return fmt.Errorf("stored theme %q is not valid", pref.Theme)
	}

	ts.theme = pref.Theme
	ts.logger.Debug("theme preference loaded", zap.String("theme", string(pref.Theme)))
	return nil
}

// Save 把当前主题写入 gdata
// 降级模式下直接返回 nil
func (ts *ThemeStore) Save() error {
	if ts.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(ThemePreference{Theme: ts.theme})
	if err != nil {
		return fmt.Errorf("failed to marshal theme preference: %w", err)
	}
	if err := ts.gdataManager.SaveObjectProp(preferencesObject, themeProperty, data); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}

	ts.logger.Debug("theme preference saved", zap.String("theme", string(ts.theme)))
	return nil
}

// Theme 返回当前主题
func (ts *ThemeStore) Theme() types.Theme {
	return ts.theme
}

// Set 显式设置主题：持久化并通知订阅者
//
// 主题没有变化时不写存储也不通知。
// 写存储失败时内存状态仍然更新（本次会话生效），并返回错误。
func (ts *ThemeStore) Set(theme types.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	if theme == ts.theme {
		return nil
	}
	ts.theme = theme
	err := ts.Save()
	ts.notify()
	return err
}

// Toggle 在浅色/深色之间切换，返回切换后的主题
func (ts *ThemeStore) Toggle() (types.Theme, error) {
	next := ts.theme.Toggle()
	err := ts.Set(next)
	return next, err
}

// Subscribe 注册主题变化回调，返回取消订阅函数（可重复调用）
func (ts *ThemeStore) Subscribe(fn func(types.Theme)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	ts.nextID++
	id := ts.nextID
	ts.subscribers = append(ts.subscribers, themeSubscriber{id: id, fn: fn})
	return func() {
		for i, s := range ts.subscribers {
			if s.id == id {
				ts.subscribers = append(ts.subscribers[:i], ts.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (ts *ThemeStore) notify() {
	subs := make([]themeSubscriber, len(ts.subscribers))
	copy(subs, ts.subscribers)
	for _, s := range subs {
		s.fn(ts.theme)
	}
}
