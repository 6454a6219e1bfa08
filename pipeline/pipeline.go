package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/flickpick/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链，按顺序执行。
// Pipeline 本身无状态，可以被多个请求并发复用。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s node %s: %w", node.Kind(), node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
