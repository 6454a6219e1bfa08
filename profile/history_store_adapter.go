package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rushteam/flickpick/core"
)

// StoreHistory 是基于 core.KeyValueStore 的观影历史适配器，实现 core.HistorySource。
// 只读：历史由外部持久化协作方写入。
//
// 存储布局：
//
//	Hash {KeyPrefix}:{userID}
//	  field = 电影 ID
//	  value = core.RatedMovie 的 JSON（rating 缺省表示看过未评分）
type StoreHistory struct {
	store core.KeyValueStore

	// KeyPrefix 是 Hash key 的前缀，默认 "history"
	KeyPrefix string
}

// NewStoreHistory 创建观影历史适配器。
func NewStoreHistory(s core.KeyValueStore, keyPrefix string) *StoreHistory {
	if keyPrefix == "" {
		keyPrefix = "history"
	}
	return &StoreHistory{store: s, KeyPrefix: keyPrefix}
}

var _ core.HistorySource = (*StoreHistory)(nil)

// RatedMovies 返回有评分的历史，按评分降序（同分按观看时间倒序、再按 ID 升序），
// 顺序决定画像中同分类别的先后。
func (h *StoreHistory) RatedMovies(ctx context.Context, userID string) ([]core.RatedMovie, error) {
	all, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	rated := make([]core.RatedMovie, 0, len(all))
	for _, m := range all {
		if m.HasRating() {
			rated = append(rated, m)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].Rating != *rated[j].Rating {
			return *rated[i].Rating > *rated[j].Rating
		}
		return newerFirst(rated[i], rated[j])
	})
	return rated, nil
}

// WatchHistory 返回全部观影记录（含未评分），按观看时间倒序。
func (h *StoreHistory) WatchHistory(ctx context.Context, userID string) ([]core.RatedMovie, error) {
	all, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return newerFirst(all[i], all[j]) })
	return all, nil
}

func (h *StoreHistory) key(userID string) string {
	return h.KeyPrefix + ":" + userID
}

func (h *StoreHistory) load(ctx context.Context, userID string) ([]core.RatedMovie, error) {
	fields, err := h.store.HGetAll(ctx, h.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []core.RatedMovie{}, nil
		}
		return nil, fmt.Errorf("load history %s: %w", userID, err)
	}
	out := make([]core.RatedMovie, 0, len(fields))
	for field, data := range fields {
		var m core.RatedMovie
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode history %s/%s: %w", userID, field, err)
		}
		out = append(out, m)
	}
	// HGetAll 无序，先按 ID 固定顺序
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func newerFirst(a, b core.RatedMovie) bool {
	if !a.WatchedAt.Equal(b.WatchedAt) {
		return a.WatchedAt.After(b.WatchedAt)
	}
	return a.ID < b.ID
}
