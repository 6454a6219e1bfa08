package rerank

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

// TopNNode 在排序后截取前 N 部电影。
// 画像匹配排序本身不截断，由这里（或 service 层）决定返回条数。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.ProfileNode{},                   // 排序
//	        &rerank.GenreDiversity{MaxPerGenre: 2}, // 类别打散
//	        &rerank.TopNNode{N: 10},               // 截取 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的电影数量
	// 如果 N <= 0，则返回所有电影（不截断）
	// 如果 N > len(items)，则返回所有电影
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredMovie,
) ([]*core.ScoredMovie, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
