package core

import "github.com/rushteam/flickpick/pkg/utils"

// RecommendContext 承载单次请求的用户/种子/画像信息，贯穿整个 Pipeline 透传。
// 每次请求新建，不跨请求复用。
type RecommendContext struct {
	UserID string
	Scene  string // similar / suggest

	// Seeds 是用户明确说"喜欢"的电影，相似度排序的参照
	Seeds []Movie

	// Profile 是显式传入的口味画像，画像匹配排序的依据；为 nil 表示没有画像
	Profile *TasteProfile

	// Candidates 是调用方直接给出的候选池（recall.Static 使用）
	Candidates []Movie

	// ExcludeIDs 是需要从候选池剔除的电影（种子、已看过）
	ExcludeIDs map[int64]struct{}

	// Labels 是请求级标签，可驱动 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数，例如 limit
	Params map[string]any
}

// Exclude 把电影加入剔除集合。
func (rctx *RecommendContext) Exclude(ids ...int64) {
	if rctx.ExcludeIDs == nil {
		rctx.ExcludeIDs = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		rctx.ExcludeIDs[id] = struct{}{}
	}
}

// IsExcluded 判断电影是否在剔除集合中。
func (rctx *RecommendContext) IsExcluded(id int64) bool {
	if rctx == nil || rctx.ExcludeIDs == nil {
		return false
	}
	_, ok := rctx.ExcludeIDs[id]
	return ok
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
