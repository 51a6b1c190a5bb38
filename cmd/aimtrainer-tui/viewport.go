package main

import "github.com/decker502/aimtrainer/pkg/config"

// viewport 将终端字符格映射到游戏逻辑坐标（默认 800x600）
type viewport struct {
	cols, rows    int
	width, height float64
}

func newViewport(cols, rows int, cfg *config.GameConfig) viewport {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return viewport{
		cols:   cols,
		rows:   rows,
		width:  float64(cfg.Window.Width),
		height: float64(cfg.Window.Height),
	}
}

// cellSize 单个字符格对应的逻辑宽高
func (v viewport) cellSize() (float64, float64) {
	return v.width / float64(v.cols), v.height / float64(v.rows)
}

// toLogical 返回字符格中心的逻辑坐标
func (v viewport) toLogical(col, row int) (float64, float64) {
	cw, ch := v.cellSize()
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch
}

// toCell 返回包含逻辑坐标的字符格，超出范围时夹到边缘
func (v viewport) toCell(x, y float64) (int, int) {
	cw, ch := v.cellSize()
	return clamp(int(x/cw), 0, v.cols-1), clamp(int(y/ch), 0, v.rows-1)
}

// topBarRows 顶部状态栏占用的行数（至少一行）
func (v viewport) topBarRows(topBarHeight int) int {
	_, ch := v.cellSize()
	rows := int(float64(topBarHeight)/ch + 0.5)
	if rows < 1 {
		return 1
	}
	return rows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
