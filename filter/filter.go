package filter

import (
	"context"

	"github.com/rushteam/flickpick/core"
)

// Filter 是过滤器的抽象接口，用于判断一部候选电影是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.ScoredMovie) (bool, error)
}

// RequestScoped 是可以按请求预加载数据的过滤器。
// FilterNode 在每次 Process 开始时调用一次 ForRequest，之后对所有候选使用返回的过滤器。
type RequestScoped interface {
	ForRequest(ctx context.Context, rctx *core.RecommendContext) Filter
}
