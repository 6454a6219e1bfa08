package rank

import (
	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/utils"
)

// FallbackEmptyProfile 是画像为空时写入 rank_fallback 的值。
const FallbackEmptyProfile = "empty_profile"

// RankByProfile 按与口味画像的契合度给候选排序，不截断。
//
// 分数 = 候选各类别在 GenreScores 中的分数之和 / 候选类别数（不在画像中的类别计 0，没有类别的候选得 0）。
// 画像为空（冷启动）时原样返回未打分的候选。
func RankByProfile(candidates []core.Movie, p core.TasteProfile) []core.ScoredMovie {
	return deref(RankItemsByProfile(core.WrapMovies(candidates), p))
}

// RankItemsByProfile 原地打分并稳定降序排序，保留 items 上已有的标签。
func RankItemsByProfile(items []*core.ScoredMovie, p core.TasteProfile) []*core.ScoredMovie {
	if p.IsEmpty() {
		for _, it := range items {
			if it == nil {
				continue
			}
			it.SimilarityScore = nil
			it.ProfileScore = nil
			it.PutLabel(utils.LabelRankFallback, utils.NewLabel(FallbackEmptyProfile, "rank"))
		}
		return items
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		it.SetProfileScore(ProfileFit(it.Movie, p))
		it.PutLabel(utils.LabelRankModel, utils.NewLabel("profile", "rank"))
	}
	sortByScore(items)
	return items
}

// ProfileFit 计算单部电影与画像的契合度。
func ProfileFit(m core.Movie, p core.TasteProfile) float64 {
	genres := m.GenreList()
	if len(genres) == 0 {
		return 0
	}
	var sum float64
	for _, g := range genres {
		sum += p.GenreScore(g)
	}
	return sum / float64(len(genres))
}
