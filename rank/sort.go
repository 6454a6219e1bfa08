package rank

import (
	"sort"

	"github.com/rushteam/flickpick/core"
)

// sortByScore 按分数稳定降序排序：同分保持输入顺序，未打分的排在最后。
func sortByScore(items []*core.ScoredMovie) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		si, oki := items[i].Score()
		sj, okj := items[j].Score()
		if oki != okj {
			return oki
		}
		return si > sj
	})
}

func deref(items []*core.ScoredMovie) []core.ScoredMovie {
	out := make([]core.ScoredMovie, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}
