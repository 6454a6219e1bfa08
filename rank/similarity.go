package rank

import (
	"fmt"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/utils"
	"github.com/rushteam/flickpick/vector"
)

// FallbackEmptyVocabulary 是语料退化时写入 rank_fallback 的值。
const FallbackEmptyVocabulary = "empty_vocabulary"

// SimilarityRanker 按与种子电影的内容相似度给候选排序。
//
// 只依赖 vector.Vectorizer；每次调用独立向量化，不缓存也不跨调用保留状态，可并发使用。
type SimilarityRanker struct {
	Vectorizer vector.Vectorizer
}

// NewSimilarityRanker 创建排序器，v 为 nil 时使用 TF-IDF。
func NewSimilarityRanker(v vector.Vectorizer) *SimilarityRanker {
	if v == nil {
		v = vector.NewTFIDF()
	}
	return &SimilarityRanker{Vectorizer: v}
}

// RankBySimilarity 返回与 seeds 最相似的至多 limit 部候选，SimilarityScore ∈ [0,1]，稳定降序。
//
//   - limit <= 0 返回 core.ErrInvalidLimit（先于其他判断）
//   - seeds 或 candidates 为空时返回空结果
//   - 语料在去停用词后没有词汇时不报错，返回前 limit 部候选（原顺序、无分数，带 rank_fallback 标签）
func (r *SimilarityRanker) RankBySimilarity(seeds, candidates []core.Movie, limit int) ([]core.ScoredMovie, error) {
	items, err := r.Rank(seeds, core.WrapMovies(candidates), limit)
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

// Rank 是 RankBySimilarity 的指针版本，原地写入分数并保留 items 上已有的标签，供 Pipeline 使用。
func (r *SimilarityRanker) Rank(seeds []core.Movie, items []*core.ScoredMovie, limit int) ([]*core.ScoredMovie, error) {
	if limit <= 0 {
		return nil, core.ErrInvalidLimit
	}
	if len(seeds) == 0 || len(items) == 0 {
		return []*core.ScoredMovie{}, nil
	}

	vz := r.Vectorizer
	if vz == nil {
		vz = vector.NewTFIDF()
	}

	corpus := make([]string, 0, len(items)+1)
	corpus = append(corpus, seedDocument(seeds))
	for _, it := range items {
		corpus = append(corpus, MovieDocument(it.Movie))
	}

	m, err := vz.Vectorize(corpus)
	if err != nil {
		if core.IsEmptyVocabulary(err) {
			return fallback(items, limit), nil
		}
		return nil, fmt.Errorf("vectorize corpus: %w", err)
	}
	if len(m.Rows) != len(corpus) {
		return nil, fmt.Errorf("vectorize corpus: got %d rows, want %d", len(m.Rows), len(corpus))
	}

	scores := vz.CosineSimilarity(m.Rows[0], m.Rows[1:])
	if len(scores) != len(items) {
		return nil, fmt.Errorf("cosine similarity: got %d scores, want %d", len(scores), len(items))
	}
	for i, it := range items {
		it.SetSimilarity(clamp01(scores[i]))
		it.PutLabel(utils.LabelRankModel, utils.NewLabel("similarity", "rank"))
	}

	sortByScore(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func fallback(items []*core.ScoredMovie, limit int) []*core.ScoredMovie {
	if len(items) > limit {
		items = items[:limit]
	}
	for _, it := range items {
		it.SimilarityScore = nil
		it.ProfileScore = nil
		it.PutLabel(utils.LabelRankFallback, utils.NewLabel(FallbackEmptyVocabulary, "rank"))
	}
	return items
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
