package components

// PositionComponent 存储实体中心位置
// 气泡使用百分比坐标（0~100），相对于游戏区域
type PositionComponent struct {
	X float64
	Y float64
}
