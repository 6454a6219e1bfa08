package vector

import (
	"math"
	"testing"

	"github.com/rushteam/flickpick/core"
)

func TestTFIDF_Vectorize(t *testing.T) {
	corpus := []string{
		"space battles aliens",
		"space exploration journey",
		"funny love story",
	}
	m, err := NewTFIDF().Vectorize(corpus)
	if err != nil {
		t.Fatalf("Vectorize() error = %v", err)
	}
	if len(m.Rows) != len(corpus) {
		t.Fatalf("rows = %d, want %d", len(m.Rows), len(corpus))
	}
	if len(m.Vocabulary) != 8 {
		t.Errorf("vocabulary size = %d, want 8", len(m.Vocabulary))
	}
	for i, row := range m.Rows {
		if got := Norm(row); math.Abs(got-1) > 1e-12 {
			t.Errorf("row %d norm = %v, want 1", i, got)
		}
	}

	// "space" 出现在两篇文档中，idf 低于只出现一次的词
	space := m.Rows[0][m.Vocabulary["space"]]
	aliens := m.Rows[0][m.Vocabulary["aliens"]]
	if space >= aliens {
		t.Errorf("weight(space)=%v should be below weight(aliens)=%v", space, aliens)
	}
}

func TestTFIDF_EmptyVocabulary(t *testing.T) {
	tests := []struct {
		name   string
		corpus []string
	}{
		{name: "nil corpus", corpus: nil},
		{name: "empty documents", corpus: []string{"", "  ", ""}},
		{name: "only stop words", corpus: []string{"the and of", "it is a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTFIDF().Vectorize(tt.corpus)
			if !core.IsEmptyVocabulary(err) {
				t.Fatalf("Vectorize() error = %v, want empty vocabulary", err)
			}
		})
	}
}

func TestTFIDF_ConcurrencyDoesNotChangeOutput(t *testing.T) {
	corpus := []string{
		"Sci-Fi Action Sci-Fi Action space battles",
		"Drama Drama a quiet story of love",
		"Horror Mystery dark house",
		"Action Thriller explosive chase",
	}
	serial, err := (&TFIDF{Concurrency: 1}).Vectorize(corpus)
	if err != nil {
		t.Fatalf("serial Vectorize() error = %v", err)
	}
	parallel, err := (&TFIDF{Concurrency: 8}).Vectorize(corpus)
	if err != nil {
		t.Fatalf("parallel Vectorize() error = %v", err)
	}
	a := CosineAll(serial.Rows[0], serial.Rows[1:])
	b := CosineAll(parallel.Rows[0], parallel.Rows[1:])
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("similarity[%d]: serial=%v parallel=%v", i, a[i], b[i])
		}
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "parallel", a: Vector{0: 1, 1: 2}, b: Vector{0: 2, 1: 4}, want: 1},
		{name: "orthogonal", a: Vector{0: 1}, b: Vector{1: 1}, want: 0},
		{name: "zero vector", a: Vector{}, b: Vector{1: 1}, want: 0},
		{name: "partial overlap", a: Vector{0: 1, 1: 1}, b: Vector{0: 1}, want: 1 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}
