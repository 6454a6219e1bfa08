package recall

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
	"github.com/rushteam/flickpick/pkg/utils"
)

// 合并策略
const (
	MergeFirst = "first" // 按 ID 去重，保留 Sources 中靠前的来源，合并 labels（默认）
	MergeUnion = "union" // 不去重，按 Sources 顺序拼接
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按 Sources 顺序合并结果。
// 合并结果与各召回源的完成先后无关。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy string        // first / union
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	if len(n.Sources) == 0 {
		return []*core.ScoredMovie{}, nil
	}

	results := make([][]*core.ScoredMovie, len(n.Sources))
	var eg errgroup.Group
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := src.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时返回空结果，不中断其他召回源
				return nil
			}
			for _, it := range items {
				if it == nil {
					continue
				}
				it.PutLabel("recall_priority", utils.NewLabel(strconv.Itoa(i), "recall"))
			}
			results[i] = items
			return nil
		})
	}
	_ = eg.Wait()

	if n.MergeStrategy == MergeUnion {
		return concat(results), nil
	}
	return mergeFirst(results), nil
}

func concat(results [][]*core.ScoredMovie) []*core.ScoredMovie {
	out := make([]*core.ScoredMovie, 0)
	for _, items := range results {
		for _, it := range items {
			if it != nil {
				out = append(out, it)
			}
		}
	}
	return out
}

// mergeFirst 按 ID 去重，保留第一个出现的，重复项的 labels 合并到保留项上。
func mergeFirst(results [][]*core.ScoredMovie) []*core.ScoredMovie {
	seen := make(map[int64]*core.ScoredMovie)
	out := make([]*core.ScoredMovie, 0)
	for _, it := range concat(results) {
		if old, ok := seen[it.ID]; ok {
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out
}
