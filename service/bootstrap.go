package service

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rushteam/flickpick/config"
	"github.com/rushteam/flickpick/config/builders"
	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/logger"
	"github.com/rushteam/flickpick/pkg/metrics"
	"github.com/rushteam/flickpick/profile"
	"github.com/rushteam/flickpick/recall"
	"github.com/rushteam/flickpick/store"
)

// NewFromSettings 按配置组装 Recommender：
//   - redis.addr 非空时使用 Redis，否则使用内存存储
//   - 候选池读 recall.StorePool，观影历史读 profile.StoreHistory
//   - pipeline.file / pipeline.suggest_file 非空时按文件构建对应场景的链路，加载失败返回错误
//   - reg 非空时注册 Prometheus 指标
//
// 返回的 closer 关闭底层存储。
func NewFromSettings(ctx context.Context, s *config.Settings, reg prometheus.Registerer) (*Recommender, func() error, error) {
	log, err := logger.New(s.Log.Level, s.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	kv, err := openStore(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	log.Info("store opened", zap.String("backend", kv.Name()))

	factory := config.DefaultFactory()
	builders.RegisterStoreNodes(factory, kv)
	similarPipeline, err := s.LoadPipeline(factory)
	if err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("similar pipeline: %w", err)
	}
	suggestPipeline, err := s.LoadSuggestPipeline(factory)
	if err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("suggest pipeline: %w", err)
	}
	if similarPipeline != nil || suggestPipeline != nil {
		log.Info("custom pipelines loaded",
			zap.String("similar", s.Pipeline.File),
			zap.String("suggest", s.Pipeline.SuggestFile))
	}

	r := NewRecommender(
		recall.NewStorePool(kv, s.Redis.PoolKey, s.Redis.MoviePrefix, s.Rank.PoolSize),
		profile.NewStoreHistory(kv, s.Redis.HistoryPrefix),
		WithLogger(log),
		WithMetrics(metrics.NewRanking(reg)),
		WithRankConfig(s.RankConfig()),
		WithDiversity(s.Rank.DiversityPerGenre),
		WithPipelines(similarPipeline, suggestPipeline),
	)
	closer := func() error {
		_ = log.Sync()
		return kv.Close()
	}
	return r, closer, nil
}

func openStore(ctx context.Context, s *config.Settings) (core.KeyValueStore, error) {
	if s.Redis.Addr == "" {
		return store.NewMemoryStore(), nil
	}
	rs, err := store.NewRedisStore(ctx, store.RedisConfig{
		Addr:     s.Redis.Addr,
		Password: s.Redis.Password,
		DB:       s.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("open redis store: %w", err)
	}
	return rs, nil
}
