package vector

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/textutil"
)

// TFIDF 是词频-逆文档频率向量化实现：
//   - 分词：小写、≥2 字符的词，剔除英文停用词（textutil.Terms）
//   - tf：原始词频
//   - idf：ln((1+n)/(1+df)) + 1（平滑，避免出现在所有文档中的词权重为 0）
//   - 每行做 L2 归一化
//
// 行向量按 Concurrency 并发构建；结果与串行构建逐位一致。
type TFIDF struct {
	// Concurrency 最大并发数，<= 0 时使用 GOMAXPROCS
	Concurrency int
}

// NewTFIDF 创建默认配置的 TF-IDF 向量化器。
func NewTFIDF() *TFIDF {
	return &TFIDF{}
}

var _ Vectorizer = (*TFIDF)(nil)

func (t *TFIDF) Vectorize(corpus []string) (*Matrix, error) {
	// 1. 分词（并发）
	terms := make([][]string, len(corpus))
	if err := t.each(len(corpus), func(i int) error {
		terms[i] = textutil.Terms(corpus[i])
		return nil
	}); err != nil {
		return nil, err
	}

	// 2. 词表按字典序编号，文档频率
	df := make(map[string]int)
	for _, doc := range terms {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, core.ErrEmptyVocabulary
	}
	words := make([]string, 0, len(df))
	for w := range df {
		words = append(words, w)
	}
	sort.Strings(words)
	vocab := make(map[string]int, len(words))
	idf := make([]float64, len(words))
	n := float64(len(corpus))
	for i, w := range words {
		vocab[w] = i
		idf[i] = math.Log((1+n)/(1+float64(df[w]))) + 1
	}

	// 3. 行向量（并发）
	rows := make([]Vector, len(corpus))
	if err := t.each(len(corpus), func(i int) error {
		row := make(Vector, len(terms[i]))
		for _, term := range terms[i] {
			row[vocab[term]]++
		}
		for k, tf := range row {
			row[k] = tf * idf[k]
		}
		if norm := Norm(row); norm > 0 {
			for k := range row {
				row[k] /= norm
			}
		}
		rows[i] = row
		return nil
	}); err != nil {
		return nil, err
	}

	return &Matrix{Vocabulary: vocab, Rows: rows}, nil
}

func (t *TFIDF) CosineSimilarity(v Vector, rows []Vector) []float64 {
	return CosineAll(v, rows)
}

// each 并发执行 fn(0..n-1)，每个下标只写自己的槽位。
func (t *TFIDF) each(n int, fn func(i int) error) error {
	limit := t.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	var eg errgroup.Group
	eg.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error { return fn(i) })
	}
	return eg.Wait()
}
