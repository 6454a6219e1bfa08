package rerank

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

// GenreDiversity 是类别打散重排：同一类别最多保留 MaxPerGenre 部，超出的丢弃，其余保持排序顺序。
// 类别来源优先级：
//   - label[LabelKey].Value（LabelKey 非空时）
//   - 电影的第一个类别
//
// 没有类别的电影不受限制。
type GenreDiversity struct {
	MaxPerGenre int    // 默认 1
	LabelKey    string // 可选
}

func (n *GenreDiversity) Name() string {
	return "rerank.diversity"
}

func (n *GenreDiversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *GenreDiversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.MaxPerGenre
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 32)
	out := make([]*core.ScoredMovie, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		genre := n.genreOf(it)
		if genre == "" {
			out = append(out, it)
			continue
		}
		if seen[genre] >= limit {
			continue
		}
		seen[genre]++
		out = append(out, it)
	}

	return out, nil
}

func (n *GenreDiversity) genreOf(it *core.ScoredMovie) string {
	if n.LabelKey != "" && it.Labels != nil {
		if lbl, ok := it.Labels[n.LabelKey]; ok && lbl.Value != "" {
			return lbl.Value
		}
	}
	if genres := it.GenreList(); len(genres) > 0 {
		return genres[0]
	}
	return ""
}
