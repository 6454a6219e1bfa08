package dsl

import (
	"testing"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/utils"
)

func TestExpr_Eval(t *testing.T) {
	item := core.NewScoredMovie(core.Movie{
		ID:     7,
		Title:  "The Ring",
		Year:   core.IntPtr(2002),
		Genres: []string{"Horror", "Mystery"},
		Plot:   core.StringPtr("a cursed videotape"),
	})
	item.SetSimilarity(0.42)
	item.PutLabel(utils.LabelRecallSource, utils.NewLabel("store", "recall"))
	rctx := &core.RecommendContext{UserID: "u1", Scene: "similar"}

	tests := []struct {
		expr string
		want bool
	}{
		{expr: "", want: true},
		{expr: `movie.year >= 2000 && "Horror" in movie.genres`, want: true},
		{expr: `"Comedy" in movie.genres`, want: false},
		{expr: `movie.scored && movie.score > 0.4`, want: true},
		{expr: `movie.plot.contains("videotape")`, want: true},
		{expr: `label.recall_source == "store"`, want: true},
		{expr: `rctx.scene == "suggest"`, want: false},
		{expr: `movie.id == 7`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr, item, rctx)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExpr_MissingFieldsUseDefaults(t *testing.T) {
	item := core.NewScoredMovie(core.Movie{ID: 1})
	e, err := Compile(`movie.year == 0 && movie.plot == "" && size(movie.genres) == 0 && !movie.scored`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	ok, err := e.Eval(item, nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !ok {
		t.Error("expected defaults for missing fields")
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, expr := range []string{`movie.year >=`, `1 + 2`} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("Compile(%q) expected error", expr)
		}
	}
}

func TestExpr_NonBoolResult(t *testing.T) {
	e, err := Compile(`movie.title`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := e.Eval(core.NewScoredMovie(core.Movie{Title: "x"}), nil); err == nil {
		t.Error("expected error for non-bool result")
	}
}
