package filter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/flickpick/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 排除列表以 JSON 数组形式存放，例如 [603, 27205]。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetExcluded 从 Store 读取排除列表。
func (a *StoreAdapter) GetExcluded(ctx context.Context, key string) ([]int64, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode exclude list %s: %w", key, err)
	}
	return ids, nil
}
