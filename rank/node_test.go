package rank

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/utils"
)

func TestSimilarityNode_ReadsSeedsAndLimit(t *testing.T) {
	rctx := &core.RecommendContext{
		Seeds:  []core.Movie{movie(100, "space battles and aliens", "Sci-Fi", "Action")},
		Params: map[string]any{"limit": 1},
	}
	items := core.WrapMovies([]core.Movie{
		movie(2, "funny love story", "Comedy", "Romance"),
		movie(3, "alien invasion war", "Sci-Fi", "Action"),
	})
	items[1].PutLabel(utils.LabelRecallSource, utils.NewLabel("static", "recall"))

	node := &SimilarityNode{Limit: 5}
	got, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("got %v, want only movie 3", core.Movies(got))
	}
	if got[0].Labels[utils.LabelRecallSource].Value != "static" {
		t.Error("recall label should survive ranking")
	}
	if node.Kind() != "rank" || node.Name() != "rank.similarity" {
		t.Errorf("unexpected node identity %s/%s", node.Kind(), node.Name())
	}
}

func TestProfileNode_NilProfileIsColdStart(t *testing.T) {
	items := core.WrapMovies([]core.Movie{{ID: 2}, {ID: 1}})
	got, err := (&ProfileNode{}).Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !reflect.DeepEqual(core.Movies(got), []core.Movie{{ID: 2}, {ID: 1}}) {
		t.Errorf("order changed: %v", core.Movies(got))
	}
}

func TestRequestLimit(t *testing.T) {
	tests := []struct {
		name string
		rctx *core.RecommendContext
		def  int
		want int
	}{
		{name: "nil context uses node limit", rctx: nil, def: 4, want: 4},
		{name: "zero node limit uses default", rctx: nil, def: 0, want: 10},
		{name: "int param", rctx: &core.RecommendContext{Params: map[string]any{"limit": 3}}, def: 4, want: 3},
		{name: "float param from yaml/json", rctx: &core.RecommendContext{Params: map[string]any{"limit": 7.0}}, def: 4, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requestLimit(tt.rctx, tt.def); got != tt.want {
				t.Errorf("requestLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}
