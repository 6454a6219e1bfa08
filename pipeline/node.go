package pipeline

import (
	"context"

	"github.com/rushteam/flickpick/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：生成候选池
	KindFilter Kind = "filter" // 过滤阶段：剔除种子、已看过或不满足条件的候选
	KindRank   Kind = "rank"   // 排序阶段：相似度 / 画像匹配打分并排序
	KindReRank Kind = "rerank" // 重排阶段：截断、类别打散
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，Recall 生成、Filter 剔除、Rank 打分、ReRank 截断都在同一形态下完成。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.ScoredMovie,
	) ([]*core.ScoredMovie, error)
}
