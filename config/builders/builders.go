// Package builders 注册内置 Node 的配置构建器。
//
// 匿名导入即可让 config.DefaultFactory 识别 recall.static、rank.similarity 等类型；
// 需要读取存储的节点（recall.store、带 key 的 exclude 过滤器）通过 RegisterStoreNodes 绑定存储。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/flickpick/config"
	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/filter"
	"github.com/rushteam/flickpick/pipeline"
	"github.com/rushteam/flickpick/pkg/conv"
	"github.com/rushteam/flickpick/rank"
	"github.com/rushteam/flickpick/recall"
	"github.com/rushteam/flickpick/rerank"
)

func init() {
	register(config.Register, nil)
}

// RegisterStoreNodes 在 f 上注册绑定了存储 s 的节点构建器，覆盖同名的默认构建器。
func RegisterStoreNodes(f *pipeline.NodeFactory, s core.KeyValueStore) {
	register(f.Register, s)
}

func register(reg func(string, pipeline.NodeBuilder), s core.KeyValueStore) {
	b := &nodeBuilders{store: s}
	reg("recall.static", BuildStaticNode)
	reg("recall.store", b.BuildStorePoolNode)
	reg("recall.fanout", b.BuildFanoutNode)
	reg("filter", b.BuildFilterNode)
	reg("rank.similarity", BuildSimilarityNode)
	reg("rank.profile", BuildProfileNode)
	reg("rerank.topn", BuildTopNNode)
	reg("rerank.diversity", BuildDiversityNode)
}

type nodeBuilders struct {
	store core.KeyValueStore
}

func BuildStaticNode(map[string]any) (pipeline.Node, error) {
	return &recall.Static{}, nil
}

func (b *nodeBuilders) storePool(cfg map[string]any) (*recall.StorePool, error) {
	if b.store == nil {
		return nil, fmt.Errorf("recall.store requires a store (see builders.RegisterStoreNodes)")
	}
	return recall.NewStorePool(
		b.store,
		conv.ConfigGet(cfg, "pool_key", ""),
		conv.ConfigGet(cfg, "movie_prefix", ""),
		int64(conv.ConfigGetInt(cfg, "size", 0)),
	), nil
}

func (b *nodeBuilders) BuildStorePoolNode(cfg map[string]any) (pipeline.Node, error) {
	pool, err := b.storePool(cfg)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (b *nodeBuilders) BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
		case "static":
			sources = append(sources, &recall.Static{})
		case "store":
			pool, err := b.storePool(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, pool)
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", recall.MergeFirst),
	}
	if ms := conv.ConfigGetInt(cfg, "timeout_ms", 0); ms > 0 {
		fanout.Timeout = time.Duration(ms) * time.Millisecond
	}
	return fanout, nil
}

func (b *nodeBuilders) BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "exclude":
			ids := conv.SliceAnyToInt64(filterMap["ids"])
			key := conv.ConfigGet(filterMap, "key", "")
			var adapter *filter.StoreAdapter
			if key != "" {
				if b.store == nil {
					return nil, fmt.Errorf("exclude filter with key %q requires a store", key)
				}
				adapter = filter.NewStoreAdapter(b.store)
			}
			filters = append(filters, filter.NewExcludeFilter(ids, adapter, key))
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""))
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildSimilarityNode(cfg map[string]any) (pipeline.Node, error) {
	limit := conv.ConfigGetInt(cfg, "limit", 0)
	if limit < 0 {
		return nil, core.ErrInvalidLimit
	}
	return &rank.SimilarityNode{Ranker: rank.NewSimilarityRanker(nil), Limit: limit}, nil
}

func BuildProfileNode(map[string]any) (pipeline.Node, error) {
	return &rank.ProfileNode{}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.GenreDiversity{
		MaxPerGenre: conv.ConfigGetInt(cfg, "max_per_genre", 1),
		LabelKey:    conv.ConfigGet(cfg, "label_key", ""),
	}, nil
}
