package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/flickpick/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境，定义 movie / label / rctx 三个变量。
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("movie", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expr 是编译后的布尔表达式，使用 CEL (Common Expression Language) 语法。
// 编译一次、并发求值。
//
// 可用变量：
//   - movie.id / movie.title / movie.year（缺失为 0）/ movie.genres / movie.plot（缺失为 ""）
//   - movie.score（未打分为 0）/ movie.scored
//   - label.<key>：标签值，例如 label.recall_source == "store"
//   - rctx.user_id / rctx.scene / rctx.params
//
// 示例：
//   - `movie.year >= 2000 && "Horror" in movie.genres`
//   - `movie.scored && movie.score > 0.2`
//   - `label.recall_source != null`（访问不存在的 key 会报错，先判空）
type Expr struct {
	src string
	prg cel.Program
}

// Compile 编译表达式；空表达式恒为 true。
func Compile(expr string) (*Expr, error) {
	if expr == "" {
		return &Expr{}, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if ot := ast.OutputType(); !ot.IsExactType(cel.BoolType) && !ot.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("compile %q: expression must return bool, got %v", expr, ot)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Expr{src: expr, prg: prg}, nil
}

// String 返回表达式原文。
func (e *Expr) String() string { return e.src }

// Eval 对单个候选求值。
func (e *Expr) Eval(item *core.ScoredMovie, rctx *core.RecommendContext) (bool, error) {
	if e.prg == nil {
		return true, nil
	}
	out, _, err := e.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", e.src, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expression must return bool, got %T", e.src, out.Value())
	}
	return result, nil
}

// Eval 编译并执行一次表达式，便于临时判断；循环内应先 Compile。
func Eval(expr string, item *core.ScoredMovie, rctx *core.RecommendContext) (bool, error) {
	e, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return e.Eval(item, rctx)
}

func buildInput(item *core.ScoredMovie, rctx *core.RecommendContext) map[string]any {
	movie := map[string]any{}
	label := map[string]any{}
	if item != nil {
		score, scored := item.Score()
		movie = map[string]any{
			"id":     item.ID,
			"title":  item.Title,
			"year":   int64(item.YearValue()),
			"genres": item.GenreList(),
			"plot":   item.PlotText(),
			"score":  score,
			"scored": scored,
		}
		for k, v := range item.Labels {
			label[k] = v.Value
		}
	}

	rc := map[string]any{"user_id": "", "scene": "", "params": map[string]any{}}
	if rctx != nil {
		rc["user_id"] = rctx.UserID
		rc["scene"] = rctx.Scene
		if rctx.Params != nil {
			rc["params"] = rctx.Params
		}
	}

	return map[string]any{
		"movie": movie,
		"label": label,
		"rctx":  rc,
	}
}
