package rank

import (
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/utils"
)

func TestRankByProfile_Ordering(t *testing.T) {
	p := core.TasteProfile{GenreScores: map[string]float64{"Horror": 9.5}, TopGenres: []string{"Horror"}}
	candidates := []core.Movie{
		{ID: 1, Genres: []string{"Comedy", "Family"}},
		{ID: 2, Genres: []string{"Horror", "Mystery"}},
	}

	got := RankByProfile(candidates, p)
	if !reflect.DeepEqual(ids(got), []int64{2, 1}) {
		t.Fatalf("ids = %v, want [2 1]", ids(got))
	}
	if math.Abs(*got[0].ProfileScore-4.75) > 1e-12 {
		t.Errorf("horror score = %v, want 4.75", *got[0].ProfileScore)
	}
	if *got[1].ProfileScore != 0 {
		t.Errorf("comedy score = %v, want 0", *got[1].ProfileScore)
	}
	if got[0].SimilarityScore != nil {
		t.Error("profile ranking must not set similarity score")
	}
	if got[0].Labels[utils.LabelRankModel].Value != "profile" {
		t.Errorf("rank_model = %v", got[0].Labels[utils.LabelRankModel])
	}
}

func TestRankByProfile_EmptyProfileKeepsOrder(t *testing.T) {
	candidates := []core.Movie{{ID: 3, Genres: []string{"Drama"}}, {ID: 1}, {ID: 2}}

	for name, p := range map[string]core.TasteProfile{
		"empty profile": core.EmptyProfile(),
		"zero value":    {},
	} {
		t.Run(name, func(t *testing.T) {
			got := RankByProfile(candidates, p)
			if !reflect.DeepEqual(ids(got), []int64{3, 1, 2}) {
				t.Errorf("ids = %v, want [3 1 2]", ids(got))
			}
			for _, it := range got {
				if _, ok := it.Score(); ok {
					t.Errorf("movie %d should be unscored", it.ID)
				}
			}
		})
	}
}

func TestRankByProfile_NoTruncationAndStableTies(t *testing.T) {
	p := core.TasteProfile{GenreScores: map[string]float64{"Drama": 4, "Crime": 2}}
	candidates := []core.Movie{
		{ID: 1, Genres: []string{"Crime"}},
		{ID: 2},
		{ID: 3, Genres: []string{"Drama", "Crime"}},
		{ID: 4, Genres: []string{"Crime", "Drama"}},
		{ID: 5, Genres: []string{"Western"}},
	}

	got := RankByProfile(candidates, p)
	if !reflect.DeepEqual(ids(got), []int64{3, 4, 1, 2, 5}) {
		t.Errorf("ids = %v, want [3 4 1 2 5]", ids(got))
	}
}

func TestRankByProfile_Idempotent(t *testing.T) {
	p := core.TasteProfile{GenreScores: map[string]float64{"Horror": 9.5, "Mystery": 3}}
	candidates := []core.Movie{
		{ID: 1, Genres: []string{"Mystery"}},
		{ID: 2, Genres: []string{"Horror", "Mystery"}},
		{ID: 3, Genres: []string{"Horror"}},
	}
	if a, b := RankByProfile(candidates, p), RankByProfile(candidates, p); !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestProfileFit(t *testing.T) {
	p := core.TasteProfile{GenreScores: map[string]float64{"A": 6, "B": 2}}
	tests := []struct {
		name   string
		genres []string
		want   float64
	}{
		{name: "no genres", genres: nil, want: 0},
		{name: "single", genres: []string{"A"}, want: 6},
		{name: "mean over all genres", genres: []string{"A", "B", "C"}, want: 8.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfileFit(core.Movie{Genres: tt.genres}, p)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ProfileFit() = %v, want %v", got, tt.want)
			}
		})
	}
}
