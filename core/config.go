package core

// RankConfig 是排序相关的配置接口，用于提供默认值。
type RankConfig interface {
	// DefaultLimit 返回默认的推荐条数
	DefaultLimit() int

	// MinRatedMovies 返回个性化推荐所需的最少评分数
	MinRatedMovies() int
}

// DefaultRankConfig 是默认的排序配置实现。
type DefaultRankConfig struct{}

func (c *DefaultRankConfig) DefaultLimit() int {
	return 10
}

func (c *DefaultRankConfig) MinRatedMovies() int {
	return 3
}
