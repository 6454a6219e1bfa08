package filter

import (
	"context"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述"保留条件"，表达式为 false 的候选被过滤。
//
//	movie.year >= 2000 && !("Horror" in movie.genres)
type ExprFilter struct {
	expr *dsl.Expr
}

// NewExprFilter 编译表达式，语法错误在构建阶段返回。
func NewExprFilter(expr string) (*ExprFilter, error) {
	e, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{expr: e}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredMovie,
) (bool, error) {
	keep, err := f.expr.Eval(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
