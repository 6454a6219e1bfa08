// Package service 组合候选源、观影历史、画像构建与排序，是推荐链路的外部调用方。
//
// 各组件之间互不调用：Recommender 负责加载数据、组装 Pipeline、记录日志与指标。
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/filter"
	"github.com/rushteam/flickpick/pipeline"
	"github.com/rushteam/flickpick/pkg/logger"
	"github.com/rushteam/flickpick/pkg/metrics"
	"github.com/rushteam/flickpick/pkg/utils"
	"github.com/rushteam/flickpick/profile"
	"github.com/rushteam/flickpick/rank"
	"github.com/rushteam/flickpick/recall"
	"github.com/rushteam/flickpick/rerank"
	"github.com/rushteam/flickpick/vector"
)

// Recommender 提供"相似推荐"和"个性化推荐"两种入口。
// 字段在构建后只读，可被多个 goroutine 并发使用。
type Recommender struct {
	Candidates core.CandidateSource
	History    core.HistorySource
	Similarity *rank.SimilarityRanker
	Config     core.RankConfig

	// DiversityPerGenre > 0 时，按第一个类别打散，每个类别最多保留这么多部（仅内置链路）
	DiversityPerGenre int
	// SimilarPipeline / SuggestPipeline 非 nil 时替换对应场景的内置链路
	SimilarPipeline *pipeline.Pipeline
	SuggestPipeline *pipeline.Pipeline

	Logger  *zap.Logger
	Metrics *metrics.Ranking
}

// Option 配置 Recommender。
type Option func(*Recommender)

func WithLogger(l *zap.Logger) Option { return func(r *Recommender) { r.Logger = l } }

func WithMetrics(m *metrics.Ranking) Option { return func(r *Recommender) { r.Metrics = m } }

func WithRankConfig(c core.RankConfig) Option { return func(r *Recommender) { r.Config = c } }

func WithVectorizer(v vector.Vectorizer) Option {
	return func(r *Recommender) { r.Similarity = rank.NewSimilarityRanker(v) }
}

func WithDiversity(perGenre int) Option {
	return func(r *Recommender) { r.DiversityPerGenre = perGenre }
}

// WithPipelines 设置自定义链路，nil 表示该场景使用内置链路。
func WithPipelines(similar, suggest *pipeline.Pipeline) Option {
	return func(r *Recommender) {
		r.SimilarPipeline = similar
		r.SuggestPipeline = suggest
	}
}

// NewRecommender 创建 Recommender。history 可以为 nil（不排除已看过，也无法个性化推荐）。
func NewRecommender(candidates core.CandidateSource, history core.HistorySource, opts ...Option) *Recommender {
	r := &Recommender{
		Candidates: candidates,
		History:    history,
		Similarity: rank.NewSimilarityRanker(nil),
		Config:     &core.DefaultRankConfig{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Logger = logger.OrNop(r.Logger)
	return r
}

// Similar 返回与 seeds 最相似的至多 limit 部电影，排除种子本身与用户看过的电影。
// limit 为 0 时使用默认条数，为负数时返回 core.ErrInvalidLimit。
func (r *Recommender) Similar(ctx context.Context, userID string, seeds []core.Movie, limit int) ([]core.ScoredMovie, error) {
	limit, err := r.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	var pool, watched []core.Movie
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		pool, err = r.loadCandidates(gctx)
		return err
	})
	eg.Go(func() (err error) {
		watched, err = r.loadWatched(gctx, userID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID:     userID,
		Scene:      "similar",
		Seeds:      seeds,
		Candidates: pool,
	}
	for _, s := range seeds {
		rctx.Exclude(s.ID)
	}
	for _, m := range watched {
		rctx.Exclude(m.ID)
	}

	p, rankLimit := r.SimilarPipeline, limit
	if p == nil {
		if r.DiversityPerGenre > 0 && len(pool) > 0 {
			// 先完整排序再打散，避免打散后不足 limit
			rankLimit = len(pool)
		}
		p = r.pipeline(&rank.SimilarityNode{Ranker: r.Similarity}, limit)
	}
	rctx.Params = map[string]any{"limit": rankLimit}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	items = truncate(items, limit)

	r.observe("similarity", userID, len(pool), items)
	return toValues(items), nil
}

// Suggest 基于用户评分历史推荐至多 limit 部没看过的电影。
// 有效评分少于 MinRatedMovies 时返回 core.ErrNotEnoughRatings。
func (r *Recommender) Suggest(ctx context.Context, userID string, limit int) ([]core.ScoredMovie, error) {
	limit, err := r.resolveLimit(limit)
	if err != nil {
		return nil, err
	}
	if r.History == nil {
		return nil, core.ErrNotEnoughRatings
	}

	var (
		pool, watched []core.Movie
		ratedHistory  []core.RatedMovie
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		pool, err = r.loadCandidates(gctx)
		return err
	})
	eg.Go(func() (err error) {
		watched, err = r.loadWatched(gctx, userID)
		return err
	})
	eg.Go(func() (err error) {
		ratedHistory, err = r.History.RatedMovies(gctx, userID)
		if err != nil {
			return fmt.Errorf("load rated movies %s: %w", userID, err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if n := profile.CountRated(ratedHistory); n < r.Config.MinRatedMovies() {
		r.Logger.Debug("not enough ratings",
			zap.String("user_id", userID),
			zap.Int("rated", n),
			zap.Int("required", r.Config.MinRatedMovies()))
		return nil, core.ErrNotEnoughRatings
	}
	taste := profile.Build(ratedHistory)

	rctx := &core.RecommendContext{
		UserID:     userID,
		Scene:      "suggest",
		Profile:    &taste,
		Candidates: pool,
	}
	for _, m := range watched {
		rctx.Exclude(m.ID)
	}
	for _, m := range ratedHistory {
		rctx.Exclude(m.ID)
	}

	rctx.Params = map[string]any{"limit": limit}
	p := r.SuggestPipeline
	if p == nil {
		p = r.pipeline(&rank.ProfileNode{}, limit)
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	items = truncate(items, limit)

	r.observe("profile", userID, len(pool), items)
	return toValues(items), nil
}

// Profile 返回用户当前的口味画像，没有评分时返回冷启动画像。
func (r *Recommender) Profile(ctx context.Context, userID string) (core.TasteProfile, error) {
	if r.History == nil {
		return core.EmptyProfile(), nil
	}
	rated, err := r.History.RatedMovies(ctx, userID)
	if err != nil {
		return core.TasteProfile{}, fmt.Errorf("load rated movies %s: %w", userID, err)
	}
	return profile.Build(rated), nil
}

// pipeline 组装 recall.static -> filter.exclude -> rank -> [diversity] -> topn。
func (r *Recommender) pipeline(ranker pipeline.Node, limit int) *pipeline.Pipeline {
	nodes := []pipeline.Node{
		&recall.Static{},
		&filter.FilterNode{Filters: []filter.Filter{filter.NewExcludeFilter(nil, nil, "")}},
		ranker,
	}
	if r.DiversityPerGenre > 0 {
		nodes = append(nodes, &rerank.GenreDiversity{MaxPerGenre: r.DiversityPerGenre})
	}
	nodes = append(nodes, &rerank.TopNNode{N: limit})
	return &pipeline.Pipeline{Nodes: nodes}
}

func (r *Recommender) resolveLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, core.ErrInvalidLimit
	case limit == 0:
		return r.Config.DefaultLimit(), nil
	default:
		return limit, nil
	}
}

func (r *Recommender) loadCandidates(ctx context.Context) ([]core.Movie, error) {
	if r.Candidates == nil {
		return []core.Movie{}, nil
	}
	pool, err := r.Candidates.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	return pool, nil
}

func (r *Recommender) loadWatched(ctx context.Context, userID string) ([]core.Movie, error) {
	if r.History == nil || userID == "" {
		return nil, nil
	}
	history, err := r.History.WatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load watch history %s: %w", userID, err)
	}
	movies := make([]core.Movie, 0, len(history))
	for _, h := range history {
		movies = append(movies, h.Movie)
	}
	return movies, nil
}

func (r *Recommender) observe(ranker, userID string, pool int, items []*core.ScoredMovie) {
	r.Metrics.ObserveCall(ranker, pool)

	fallback := ""
	if len(items) > 0 {
		if lbl, ok := items[0].Labels[utils.LabelRankFallback]; ok {
			fallback = lbl.Value
			r.Metrics.ObserveFallback(fallback)
		}
	}
	r.Logger.Debug("ranked",
		zap.String("ranker", ranker),
		zap.String("user_id", userID),
		zap.Int("pool", pool),
		zap.Int("returned", len(items)),
		zap.String("fallback", fallback))
}

func truncate(items []*core.ScoredMovie, limit int) []*core.ScoredMovie {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func toValues(items []*core.ScoredMovie) []core.ScoredMovie {
	out := make([]core.ScoredMovie, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}
