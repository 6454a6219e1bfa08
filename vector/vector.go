// Package vector 提供文本向量化与余弦相似度原语。
//
// 排序逻辑只依赖 Vectorizer 接口，具体实现可以是本包的 TFIDF，也可以是任意外部向量化服务；
// 测试中可替换为确定性返回 core.ErrEmptyVocabulary 的假实现。
package vector

import (
	"math"
	"sort"
)

// Vector 是稀疏向量：词表下标 -> 权重。
type Vector map[int]float64

// Keys 返回升序的下标。累加按固定顺序进行，保证同样输入得到逐位相同的结果。
func (v Vector) Keys() []int {
	keys := make([]int, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Matrix 是语料的向量化结果，Rows[i] 对应 corpus[i]。
type Matrix struct {
	Vocabulary map[string]int
	Rows       []Vector
}

// Vectorizer 是向量化能力的窄接口。
type Vectorizer interface {
	// Vectorize 把语料转为向量矩阵；语料没有可用词汇时返回 core.ErrEmptyVocabulary
	Vectorize(corpus []string) (*Matrix, error)

	// CosineSimilarity 计算 v 与 rows 中每一行的余弦相似度，顺序与 rows 一致
	CosineSimilarity(v Vector, rows []Vector) []float64
}

// Norm 返回 L2 范数。
func Norm(v Vector) float64 {
	var sum float64
	for _, k := range v.Keys() {
		sum += v[k] * v[k]
	}
	return math.Sqrt(sum)
}

// Cosine 计算两个稀疏向量的余弦相似度，任一为零向量时返回 0。
func Cosine(a, b Vector) float64 {
	normA, normB := Norm(a), Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	// 遍历较短的一侧
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for _, k := range a.Keys() {
		if vb, ok := b[k]; ok {
			dot += a[k] * vb
		}
	}
	return dot / (normA * normB)
}

// CosineAll 对 rows 逐行计算 Cosine。
func CosineAll(v Vector, rows []Vector) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = Cosine(v, row)
	}
	return out
}
