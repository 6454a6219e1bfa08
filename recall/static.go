package recall

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

// Static 是请求内候选召回：候选池由调用方放在 rctx.Candidates，
// rctx 中没有候选时使用 Movies 作为 fallback。
// Static 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Static struct {
	Movies []core.Movie
}

func (r *Static) Name() string        { return "recall.static" }
func (r *Static) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Static) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Static) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.ScoredMovie, error) {
	movies := r.Movies
	if rctx != nil && len(rctx.Candidates) > 0 {
		movies = rctx.Candidates
	}
	return tag(core.WrapMovies(movies), "static"), nil
}

// Candidates 实现 core.CandidateSource，返回 fallback 列表的副本。
func (r *Static) Candidates(_ context.Context) ([]core.Movie, error) {
	return append([]core.Movie{}, r.Movies...), nil
}

var _ core.CandidateSource = (*Static)(nil)
