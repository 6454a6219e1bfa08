package core

import "context"

// CandidateSource 是电影目录协作方的领域接口：提供待排序的候选池。
//
// 目录数据按"尽力而为"填充，缺失的类别/剧情/年份都是合法输入。
// 实现：
//   - recall.StorePool（基于 core.KeyValueStore 读取已入库的候选）
//   - 远程目录客户端由外部实现
type CandidateSource interface {
	Candidates(ctx context.Context) ([]Movie, error)
}

// HistorySource 是观影历史协作方的领域接口，只读。
//
//   - RatedMovies 返回带评分的历史（可能包含未评分条目，构建画像时会忽略）
//   - WatchHistory 返回完整观影记录，用于剔除已看过的候选
//
// 实现：
//   - profile.StoreHistory（基于 core.KeyValueStore）
type HistorySource interface {
	RatedMovies(ctx context.Context, userID string) ([]RatedMovie, error)
	WatchHistory(ctx context.Context, userID string) ([]RatedMovie, error)
}
