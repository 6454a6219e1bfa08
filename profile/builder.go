// Package profile 从评分历史构建口味画像（TasteProfile）。
package profile

import (
	"sort"

	"github.com/rushteam/flickpick/core"
)

const (
	// TopGenres 是画像保留的头部类别数
	TopGenres = 5

	// MinRated 是个性化推荐要求的最少评分数（冷启动阈值）
	MinRated = 3
)

// Build 把评分历史折叠为口味画像。
//
// 对每部有评分的电影：r 为评分，w = r/10，向它的每个类别累加 w*r 并计数；
// 类别分数 = 累加和 / 出现次数（按类别求均值，而不是全局均值）。
// 未评分的条目完全不参与计算，包括 AvgRating 的分子与分母。
//
// 空输入或没有任何评分时返回冷启动画像，不报错。
// 评分超出 1..10 属于调用方违反前置条件，此处不校验也不截断。
func Build(rated []core.RatedMovie) core.TasteProfile {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	order := make([]string, 0)

	var total float64
	var n int
	for _, m := range rated {
		if !m.HasRating() {
			continue
		}
		r := float64(*m.Rating)
		w := r / 10.0
		for _, g := range m.GenreList() {
			if _, ok := counts[g]; !ok {
				order = append(order, g)
			}
			sums[g] += w * r
			counts[g]++
		}
		total += r
		n++
	}

	if n == 0 {
		return core.EmptyProfile()
	}

	scores := make(map[string]float64, len(sums))
	for g, sum := range sums {
		scores[g] = sum / float64(counts[g])
	}

	// 稳定排序：同分时先出现的类别在前
	sorted := append([]string{}, order...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scores[sorted[i]] > scores[sorted[j]]
	})
	if len(sorted) > TopGenres {
		sorted = sorted[:TopGenres]
	}

	return core.TasteProfile{
		GenreScores: scores,
		TopGenres:   sorted,
		AvgRating:   total / float64(n),
	}
}

// CountRated 返回有显式评分的条目数。
func CountRated(rated []core.RatedMovie) int {
	n := 0
	for _, m := range rated {
		if m.HasRating() {
			n++
		}
	}
	return n
}

// Summary 是画像对外（例如自然语言协作方的提示词上下文）暴露的摘要。
type Summary struct {
	TopGenres []string `json:"top_genres"`
	AvgRating float64  `json:"avg_rating"`
}

// Summarize 提取画像摘要，TopGenres 为副本。
func Summarize(p core.TasteProfile) Summary {
	return Summary{
		TopGenres: append([]string{}, p.TopGenres...),
		AvgRating: p.AvgRating,
	}
}
