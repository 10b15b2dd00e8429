package utils

// PointInRect 检查点是否在矩形内（用于按钮命中检测）
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
