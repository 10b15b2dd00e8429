package components

// PopAnimationComponent 存储气泡破裂动画的状态
//
// 工作流程：
//  1. PopSystem.RequestPop 添加此组件，同时移除 LifetimeComponent
//  2. PopSystem.Update 每帧累加 Elapsed
//  3. Elapsed >= Duration 时结算分数并删除实体
type PopAnimationComponent struct {
	// Elapsed 已播放时间（秒）
	Elapsed float64

	// Duration 动画总时长（秒）
	Duration float64
}

// Progress 返回动画进度（0.0 ~ 1.0）
func (p *PopAnimationComponent) Progress() float64 {
	if p.Duration <= 0 {
		return 1.0
	}
	progress := p.Elapsed / p.Duration
	if progress > 1.0 {
		return 1.0
	}
	return progress
}
