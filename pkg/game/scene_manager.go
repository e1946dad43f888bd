package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneFactory 场景工厂函数类型
// 用于按页面路径创建场景，避免循环依赖
type SceneFactory func(path string) Scene

// SceneManager manages which page is active.
// It ensures only one scene's Update and Draw methods are called at any given
// time, and unmounts the previous scene when switching.
type SceneManager struct {
	currentScene Scene
	currentPath  string
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
	logger       *zap.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadPage to set one.
func NewSceneManager(logger *zap.Logger) *SceneManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneManager{logger: logger.Named("SceneManager")}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is unmounted if it implements Unmountable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if u, ok := sm.currentScene.(Unmountable); ok {
		u.Unmount()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentPath 返回当前页面路径
func (sm *SceneManager) CurrentPath() string {
	return sm.currentPath
}

// LoadPage 加载指定路径的页面场景
// path: 页面路径，如 "/", "/services"
func (sm *SceneManager) LoadPage(path string) {
	if sm.sceneFactory == nil {
		sm.logger.Error("scene factory not set")
		return
	}
	if path == sm.currentPath && sm.currentScene != nil {
		return
	}

	newScene := sm.sceneFactory(path)
	if newScene == nil {
		sm.logger.Error("failed to create page scene", zap.String("path", path))
		return
	}
	sm.SwitchTo(newScene)
	sm.currentPath = path
	sm.logger.Info("page loaded", zap.String("path", path))
}

// Close 卸载当前场景（程序退出时调用）
func (sm *SceneManager) Close() {
	sm.SwitchTo(nil)
	sm.currentPath = ""
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
