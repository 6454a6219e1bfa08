// Package metrics 定义排序链路的 Prometheus 指标。
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking 汇总排序调用、降级与打分数量。
// 通过 NewRanking 注册到调用方提供的 Registerer，避免污染全局注册表。
type Ranking struct {
	Calls      *prometheus.CounterVec   // ranker: similarity / profile
	Fallbacks  *prometheus.CounterVec   // reason: empty_vocabulary / empty_profile / ...
	Candidates *prometheus.HistogramVec // 每次排序的候选数
}

// NewRanking 创建并注册指标；reg 为 nil 时只创建不注册。
func NewRanking(reg prometheus.Registerer) *Ranking {
	m := &Ranking{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flickpick",
			Name:      "rank_calls_total",
			Help:      "Number of ranking calls by ranker.",
		}, []string{"ranker"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flickpick",
			Name:      "rank_fallbacks_total",
			Help:      "Number of ranking calls that degraded to unscored output.",
		}, []string{"reason"}),
		Candidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flickpick",
			Name:      "rank_candidates",
			Help:      "Candidate pool size per ranking call.",
			Buckets:   []float64{0, 10, 20, 50, 100, 200, 500, 1000},
		}, []string{"ranker"}),
	}
	if reg != nil {
		reg.MustRegister(m.Calls, m.Fallbacks, m.Candidates)
	}
	return m
}

// ObserveCall 记录一次排序调用。m 为 nil 时忽略。
func (m *Ranking) ObserveCall(ranker string, candidates int) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(ranker).Inc()
	m.Candidates.WithLabelValues(ranker).Observe(float64(candidates))
}

// ObserveFallback 记录一次降级。
func (m *Ranking) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(reason).Inc()
}
