package recall

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/utils"
)

// Source 表示一个可复用的召回源（请求内候选 / 存储候选池 / ...）。
// 可以理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.ScoredMovie, error)
}

// tag 记录召回来源 label，方便 explain / 观测。
func tag(items []*core.ScoredMovie, source string) []*core.ScoredMovie {
	for _, it := range items {
		it.PutLabel(utils.LabelRecallSource, utils.NewLabel(source, "recall"))
	}
	return items
}
