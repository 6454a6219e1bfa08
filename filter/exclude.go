package filter

import (
	"context"

	"github.com/rushteam/flickpick/core"
)

// ExcludeFilter 剔除不应再推荐的电影：
//   - 请求上下文中的 ExcludeIDs（种子、已看过）
//   - 固定的 IDs 列表
//   - Store 中 Key 对应的 ID 列表（可选，例如下架片单）
type ExcludeFilter struct {
	IDs []int64

	// Store 用于从存储中读取排除列表（可选）
	Store ExcludeStore

	// Key 是 Store 中的排除列表 key（可选）
	Key string

	// ForRequest 预加载的排除列表；bound 为 true 时不再访问 Store
	bound   bool
	loaded  map[int64]struct{}
	loadErr error
}

// ExcludeStore 是排除列表的存储接口。
type ExcludeStore interface {
	// GetExcluded 获取排除的电影 ID 列表
	GetExcluded(ctx context.Context, key string) ([]int64, error)
}

// NewExcludeFilter 创建排除过滤器，storeAdapter 为 nil 时只使用请求上下文与固定列表。
func NewExcludeFilter(ids []int64, storeAdapter *StoreAdapter, key string) *ExcludeFilter {
	var store ExcludeStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &ExcludeFilter{
		IDs:   ids,
		Store: store,
		Key:   key,
	}
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredMovie,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if rctx.IsExcluded(item.ID) {
		return true, nil
	}

	for _, id := range f.IDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.bound {
		if f.loadErr != nil {
			return false, f.loadErr
		}
		_, ok := f.loaded[item.ID]
		return ok, nil
	}
	if f.Store != nil && f.Key != "" {
		excluded, err := f.Store.GetExcluded(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		for _, id := range excluded {
			if item.ID == id {
				return true, nil
			}
		}
	}

	return false, nil
}

// ForRequest 读取一次 Store 中的排除列表，返回只在内存中判断的过滤器。
// 读取失败（key 不存在除外）时，返回的过滤器仍按请求上下文与 IDs 剔除，其余候选报告该错误。
func (f *ExcludeFilter) ForRequest(ctx context.Context, _ *core.RecommendContext) Filter {
	if f.bound || f.Store == nil || f.Key == "" {
		return f
	}
	bound := &ExcludeFilter{IDs: f.IDs, Key: f.Key, bound: true}
	excluded, err := f.Store.GetExcluded(ctx, f.Key)
	if err != nil && !core.IsStoreNotFound(err) {
		bound.loadErr = err
		return bound
	}
	bound.loaded = make(map[int64]struct{}, len(excluded))
	for _, id := range excluded {
		bound.loaded[id] = struct{}{}
	}
	return bound
}

var _ RequestScoped = (*ExcludeFilter)(nil)
