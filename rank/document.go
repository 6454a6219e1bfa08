package rank

import (
	"strings"

	"github.com/rushteam/flickpick/core"
)

// GenreRepeat 是类别在文档中的重复次数。
// 类别词重复后在 TF 中占更大权重，类别一致比剧情用词重合更能决定相似度。
const GenreRepeat = 3

// MovieDocument 把电影转为向量化用的文本：类别（空格拼接）重复 GenreRepeat 次，再接剧情简介。
//
//	genres=[Action Sci-Fi], plot="Space battles."
//	=> "Action Sci-Fi Action Sci-Fi Action Sci-Fi Space battles."
func MovieDocument(m core.Movie) string {
	genres := strings.Join(m.GenreList(), " ")
	parts := make([]string, 0, GenreRepeat+1)
	for i := 0; i < GenreRepeat; i++ {
		parts = append(parts, genres)
	}
	parts = append(parts, m.PlotText())
	return strings.Join(parts, " ")
}

// seedDocument 把所有种子的文档拼成一篇。
func seedDocument(seeds []core.Movie) string {
	docs := make([]string, 0, len(seeds))
	for _, s := range seeds {
		docs = append(docs, MovieDocument(s))
	}
	return strings.Join(docs, " ")
}
