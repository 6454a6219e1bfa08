package rank

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
	"github.com/rushteam/flickpick/pkg/conv"
)

// SimilarityNode 是相似度排序的 Pipeline 节点，种子取自 rctx.Seeds。
//   - 写入 labels：rank_model=similarity，或退化时 rank_fallback=empty_vocabulary
//   - 请求参数 rctx.Params["limit"] 优先于 Limit
type SimilarityNode struct {
	Ranker *SimilarityRanker
	Limit  int
}

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	ranker := n.Ranker
	if ranker == nil {
		ranker = NewSimilarityRanker(nil)
	}
	var seeds []core.Movie
	if rctx != nil {
		seeds = rctx.Seeds
	}
	return ranker.Rank(seeds, compact(items), requestLimit(rctx, n.Limit))
}

// ProfileNode 是画像匹配排序的 Pipeline 节点，画像取自 rctx.Profile；
// rctx.Profile 为 nil 按冷启动处理。
type ProfileNode struct{}

func (n *ProfileNode) Name() string        { return "rank.profile" }
func (n *ProfileNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ProfileNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	p := core.EmptyProfile()
	if rctx != nil && rctx.Profile != nil {
		p = *rctx.Profile
	}
	return RankItemsByProfile(compact(items), p), nil
}

func requestLimit(rctx *core.RecommendContext, def int) int {
	if rctx != nil && rctx.Params != nil {
		if n, ok := conv.ToInt64(rctx.Params["limit"]); ok {
			return int(n)
		}
	}
	if def == 0 {
		return (&core.DefaultRankConfig{}).DefaultLimit()
	}
	return def
}

func compact(items []*core.ScoredMovie) []*core.ScoredMovie {
	out := items[:0:0]
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}
