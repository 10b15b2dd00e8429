package components

// VelocityComponent 存储实体的每次漂移位移
// 每次漂移重新随机生成，仅在同一次漂移的碰撞处理中有效
type VelocityComponent struct {
	VX float64
	VY float64
}
