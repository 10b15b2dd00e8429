package components

// ScaleComponent 存储实体级别的缩放因子和透明度
// 用于在渲染时表现气泡破裂（缩小并淡出）
type ScaleComponent struct {
	// Scale 缩放因子（1.0 = 原始大小，0.18 = 破裂结束时的大小）
	Scale float64

	// Alpha 不透明度（1.0 = 完全不透明，0.0 = 完全透明）
	Alpha float64
}
