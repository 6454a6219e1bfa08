package core

import "time"

// Movie 是推荐链路中的电影记录，由调用方（目录服务/缓存）提供，组件内只读不写。
//
// 可选字段使用指针或 nil 切片表达"缺失"：
//   - Year == nil  表示年份未知
//   - Genres == nil 表示没有类别
//   - Plot == nil  表示没有剧情简介
//
// 组件统一通过 GenreList / PlotText / YearValue 读取，缺失即默认值，不做零散的存在性判断。
type Movie struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Year      *int     `json:"year,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Plot      *string  `json:"plot,omitempty"`
	PosterURL string   `json:"poster_url,omitempty"`
}

// GenreList 返回类别标签；缺失时为空切片。
func (m Movie) GenreList() []string {
	if m.Genres == nil {
		return []string{}
	}
	return m.Genres
}

// PlotText 返回剧情简介；缺失时为 ""。
func (m Movie) PlotText() string {
	if m.Plot == nil {
		return ""
	}
	return *m.Plot
}

// YearValue 返回年份；缺失时为 0。
func (m Movie) YearValue() int {
	if m.Year == nil {
		return 0
	}
	return *m.Year
}

// RatedMovie 是带用户评分的电影。
//
// Rating 为 1-10 的整数；nil 表示"看过但未评分"，不参与任何偏好计算（不是 0 分）。
// 评分取值范围由调用方在构造前校验，这里不做二次校验也不做截断。
type RatedMovie struct {
	Movie
	Rating    *int      `json:"rating,omitempty"`
	WatchedAt time.Time `json:"watched_at,omitempty"`
}

// HasRating 判断是否有显式评分。
func (r RatedMovie) HasRating() bool {
	return r.Rating != nil
}

// IntPtr / StringPtr 便于构造可选字段。
func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }
