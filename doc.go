// Package flickpick 是电影推荐的打分内核。
//
// 设计要点：
// - 三个纯组件：profile.Build（评分历史 -> 口味画像）、rank.SimilarityRanker（按种子内容相似度排序）、
//   rank.RankByProfile（按画像契合度排序），彼此不调用
// - Pipeline-first: 组合通过 Node 串联（Recall → Filter → Rank → ReRank），由 service 或配置组装
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测（例如 rank_fallback）
package flickpick

import (
	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

// 轻量 facade：便于直接 import "github.com/rushteam/flickpick" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Movie = core.Movie
type RatedMovie = core.RatedMovie
type ScoredMovie = core.ScoredMovie
type TasteProfile = core.TasteProfile

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
