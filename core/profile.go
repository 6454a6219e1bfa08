package core

// TasteProfile 是从用户评分历史推导出的口味画像，构建后只读。
//
// 一句话定义：画像 = 每个类别的偏好强度 + 最偏好的类别 + 平均评分。
//
//	字段          作用
//	GenreScores   画像匹配排序的核心信号（非负实数）
//	TopGenres     按分数降序的前 5 个类别（同分保留先出现者）
//	AvgRating     已评分电影的平均分；没有评分时为 0
//
// 画像总是作为参数显式传入，不存在全局/共享的画像状态。
type TasteProfile struct {
	GenreScores map[string]float64 `json:"genre_scores"`
	TopGenres   []string           `json:"top_genres"`
	AvgRating   float64            `json:"avg_rating"`
}

// EmptyProfile 返回冷启动画像。
func EmptyProfile() TasteProfile {
	return TasteProfile{
		GenreScores: map[string]float64{},
		TopGenres:   []string{},
		AvgRating:   0,
	}
}

// IsEmpty 判断画像是否没有任何类别信号。
func (p TasteProfile) IsEmpty() bool {
	return len(p.GenreScores) == 0
}

// GenreScore 获取类别偏好分数，未出现的类别为 0。
func (p TasteProfile) GenreScore(genre string) float64 {
	if p.GenreScores == nil {
		return 0
	}
	return p.GenreScores[genre]
}

// HasGenre 检查类别分数是否达到阈值。
func (p TasteProfile) HasGenre(genre string, threshold float64) bool {
	score, ok := p.GenreScores[genre]
	if !ok {
		return false
	}
	return score >= threshold
}
