package core

import "github.com/rushteam/flickpick/pkg/utils"

// ScoredMovie 是排序结果的统一承载结构：电影本身 + 打分 + 标签。
//
// SimilarityScore 与 ProfileScore 至多有一个非空，取决于产生它的排序器：
//   - 相似度排序：SimilarityScore ∈ [0,1]
//   - 画像匹配排序：ProfileScore ≥ 0（无上界）
//   - 兜底/无信号：两者均为 nil
//
// Labels 用于解释与观测（例如 rank_model、rank_fallback），不参与排序。
type ScoredMovie struct {
	Movie
	SimilarityScore *float64               `json:"similarity_score,omitempty"`
	ProfileScore    *float64               `json:"profile_score,omitempty"`
	Labels          map[string]utils.Label `json:"labels,omitempty"`
}

// NewScoredMovie 包装一部未打分的电影。
func NewScoredMovie(m Movie) *ScoredMovie {
	return &ScoredMovie{
		Movie:  m,
		Labels: make(map[string]utils.Label),
	}
}

// WrapMovies 按原顺序包装为未打分结果。
func WrapMovies(movies []Movie) []*ScoredMovie {
	out := make([]*ScoredMovie, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewScoredMovie(m))
	}
	return out
}

// Score 返回当前生效的分数；未打分时 ok 为 false。
func (s *ScoredMovie) Score() (float64, bool) {
	switch {
	case s.SimilarityScore != nil:
		return *s.SimilarityScore, true
	case s.ProfileScore != nil:
		return *s.ProfileScore, true
	default:
		return 0, false
	}
}

// SetSimilarity 写入相似度分数，并清空画像分数。
func (s *ScoredMovie) SetSimilarity(v float64) {
	s.SimilarityScore = &v
	s.ProfileScore = nil
}

// SetProfileScore 写入画像匹配分数，并清空相似度分数。
func (s *ScoredMovie) SetProfileScore(v float64) {
	s.ProfileScore = &v
	s.SimilarityScore = nil
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (s *ScoredMovie) PutLabel(key string, lbl utils.Label) {
	if s.Labels == nil {
		s.Labels = make(map[string]utils.Label)
	}
	if old, ok := s.Labels[key]; ok {
		s.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	s.Labels[key] = lbl
}

// Movies 拆出结果中的电影，保持顺序。
func Movies(items []*ScoredMovie) []Movie {
	out := make([]Movie, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, it.Movie)
	}
	return out
}
