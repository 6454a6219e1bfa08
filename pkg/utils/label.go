package utils

// Label 是推荐链路中的解释信息：可追踪、可透传，不参与排序。
// Value 与 Source 的语义由各节点约定，这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rank / rerank
}

// 常用 Label key。
const (
	LabelRecallSource = "recall_source" // 候选来源：static / store
	LabelRankModel    = "rank_model"    // 打分模型：similarity / profile
	LabelRankFallback = "rank_fallback" // 排序降级原因，例如 empty_vocabulary / empty_profile
	LabelFiltered     = "filtered"      // 被哪个过滤器剔除
)

// NewLabel 构造 Label。
func NewLabel(value, source string) Label {
	return Label{Value: value, Source: source}
}

// MergeLabel 合并同名 Label，保留历史：
//   - Value 以 '|' 累积
//   - Source 以 ',' 累积
//
// 任一侧 Value 为空时直接取另一侧。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := Label{Value: existing.Value + "|" + incoming.Value}
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "", incoming.Source == existing.Source:
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
