package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a page of the site (home, services, projects, team, contact).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Unmountable 是一个可选接口，场景被替换或程序退出时调用 Unmount
//
// 实现此接口的场景必须在 Unmount 中同步取消帧请求并移除所有监听，
// 否则被替换的页面会继续在后台运行动画。
type Unmountable interface {
	Unmount()
}
