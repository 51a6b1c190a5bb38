// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameInput 存储当前帧的输入快照
// 统一处理鼠标、触摸和键盘输入，每帧由场景读取一次
type FrameInput struct {
	// 指针位置（触摸优先，其次鼠标）
	X, Y int
	// 本帧是否有点击/触摸刚刚发生
	Click bool
	// 是否请求退出（Q）
	Quit bool
	// 是否请求切换暂停（ESC / P）
	TogglePause bool
	// 是否请求开始（SPACE / ENTER）
	Start bool
	// 是否切换命中音效（M）
	ToggleSound bool
	// 本帧是否有任意键刚刚按下
	AnyKey bool
	// 难度选择：-1 向左，+1 向右，0 不变
	DifficultyStep int
	// 直接选择难度（1/2/3 对应索引 0/1/2），-1 表示未选择
	DifficultyIndex int
}

// ReadFrameInput 读取当前帧的输入快照
func ReadFrameInput() FrameInput {
	input := FrameInput{DifficultyIndex: -1}

	// 首先检查触摸输入（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		input.Click = true
		input.X, input.Y = ebiten.TouchPosition(touchIDs[0])
	} else if allTouchIDs := ebiten.AppendTouchIDs(nil); len(allTouchIDs) > 0 {
		input.X, input.Y = ebiten.TouchPosition(allTouchIDs[0])
	} else {
		// 其次检查鼠标输入（桌面设备）
		input.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		input.X, input.Y = ebiten.CursorPosition()
	}

	applyKeys(&input, inpututil.AppendJustPressedKeys(nil))
	return input
}

// applyKeys 将本帧刚按下的按键映射为输入动作
func applyKeys(input *FrameInput, keys []ebiten.Key) {
	for _, key := range keys {
		input.AnyKey = true

		switch key {
		case ebiten.KeyQ:
			input.Quit = true
		case ebiten.KeyEscape, ebiten.KeyP:
			input.TogglePause = true
		case ebiten.KeySpace, ebiten.KeyEnter:
			input.Start = true
		case ebiten.KeyM:
			input.ToggleSound = true
		case ebiten.KeyArrowLeft:
			input.DifficultyStep--
		case ebiten.KeyArrowRight:
			input.DifficultyStep++
		case ebiten.KeyDigit1:
			input.DifficultyIndex = 0
		case ebiten.KeyDigit2:
			input.DifficultyIndex = 1
		case ebiten.KeyDigit3:
			input.DifficultyIndex = 2
		}
	}
}
