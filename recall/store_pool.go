package recall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

// StorePool 从 core.KeyValueStore 读取外部已入库的候选池，实现 core.CandidateSource。
// 只读：数据由目录同步任务写入，这里不访问远程目录服务。
//
// 存储布局：
//
//	ZSet {PoolKey}                 member = 电影 ID，score = 排序权重（例如热度），按分数降序读取
//	String {MoviePrefix}:{movieID} value = core.Movie 的 JSON
//
// 有 ID 但没有电影 JSON 的条目会被跳过。
type StorePool struct {
	Store core.KeyValueStore

	// PoolKey 候选池有序集合 key，默认 "pool:movies"
	PoolKey string

	// MoviePrefix 电影详情 key 前缀，默认 "movie"
	MoviePrefix string

	// Size 最多读取的候选数，<= 0 表示全部
	Size int64
}

// NewStorePool 创建候选池适配器。
func NewStorePool(s core.KeyValueStore, poolKey, moviePrefix string, size int64) *StorePool {
	if poolKey == "" {
		poolKey = "pool:movies"
	}
	if moviePrefix == "" {
		moviePrefix = "movie"
	}
	return &StorePool{Store: s, PoolKey: poolKey, MoviePrefix: moviePrefix, Size: size}
}

var _ core.CandidateSource = (*StorePool)(nil)

func (r *StorePool) Name() string        { return "recall.store" }
func (r *StorePool) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *StorePool) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *StorePool) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.ScoredMovie, error) {
	movies, err := r.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	return tag(core.WrapMovies(movies), "store"), nil
}

// Candidates 按候选池顺序返回电影。
func (r *StorePool) Candidates(ctx context.Context) ([]core.Movie, error) {
	if r.Store == nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "recall: store pool has no store")
	}

	stop := int64(-1)
	if r.Size > 0 {
		stop = r.Size - 1
	}
	ids, err := r.Store.ZRange(ctx, r.PoolKey, 0, stop)
	if err != nil {
		return nil, fmt.Errorf("read candidate pool %s: %w", r.PoolKey, err)
	}
	if len(ids) == 0 {
		return []core.Movie{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.MoviePrefix+":"+id)
	}
	data, err := r.Store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read candidate movies: %w", err)
	}

	movies := make([]core.Movie, 0, len(keys))
	for _, k := range keys {
		raw, ok := data[k]
		if !ok {
			continue
		}
		var m core.Movie
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode movie %s: %w", k, err)
		}
		movies = append(movies, m)
	}
	return movies, nil
}
