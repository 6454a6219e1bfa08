package filter

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
	"github.com/rushteam/flickpick/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该电影就会被过滤掉；保留的候选维持原顺序。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	filters := make([]Filter, 0, len(n.Filters))
	for _, f := range n.Filters {
		if rs, ok := f.(RequestScoped); ok {
			f = rs.ForRequest(ctx, rctx)
		}
		filters = append(filters, f)
	}
	out := make([]*core.ScoredMovie, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		filterReason := ""
		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时保留候选，不中断流程
				continue
			}
			if ok {
				filterReason = f.Name()
				break
			}
		}

		if filterReason != "" {
			item.PutLabel(utils.LabelFiltered, utils.NewLabel("true", filterReason))
			continue
		}
		out = append(out, item)
	}

	return out, nil
}
