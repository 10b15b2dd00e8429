package components

// ClickableComponent 标记实体可以被鼠标点击
// 气泡使用圆形点击区域
type ClickableComponent struct {
	Radius    float64 // 点击半径(像素)
	IsEnabled bool    // 是否可以被点击(用于禁用已点击的对象)
}
