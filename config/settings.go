package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

// EnvPrefix 是环境变量前缀，例如 FLICKPICK_REDIS_ADDR 覆盖 redis.addr。
const EnvPrefix = "FLICKPICK"

// Settings 是 flickpick 的运行配置。
// 加载顺序：默认值 -> 配置文件（flickpick.yaml）-> 环境变量，最后校验。
type Settings struct {
	Rank     RankSettings     `mapstructure:"rank"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Pipeline PipelineSettings `mapstructure:"pipeline"`
	Log      LogSettings      `mapstructure:"log"`
}

type RankSettings struct {
	DefaultLimit      int   `mapstructure:"default_limit"`
	MinRated          int   `mapstructure:"min_rated"`
	DiversityPerGenre int   `mapstructure:"diversity_per_genre"` // 0 表示不做类别打散
	PoolSize          int64 `mapstructure:"pool_size"`           // 0 表示读取整个候选池
}

type RedisSettings struct {
	Addr          string `mapstructure:"addr"` // 为空时使用内存存储
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	PoolKey       string `mapstructure:"pool_key"`
	MoviePrefix   string `mapstructure:"movie_prefix"`
	HistoryPrefix string `mapstructure:"history_prefix"`
}

// PipelineSettings 指定按场景替换内置链路的 Pipeline 文件，为空时使用内置链路。
// 自定义链路由 service 提供候选池（rctx.Candidates）、剔除集合与 rctx.Params["limit"]，
// 需要自行包含 recall 与 exclude 过滤节点。
type PipelineSettings struct {
	File        string `mapstructure:"file"`         // 相似推荐（similar）
	SuggestFile string `mapstructure:"suggest_file"` // 个性化推荐（suggest）
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json / console
}

// Load 读取配置。path 为空时在 . 与 ./configs 下查找 flickpick.yaml，找不到文件不算错误。
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("flickpick")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	def := &core.DefaultRankConfig{}
	v.SetDefault("rank.default_limit", def.DefaultLimit())
	v.SetDefault("rank.min_rated", def.MinRatedMovies())
	v.SetDefault("rank.diversity_per_genre", 0)
	v.SetDefault("rank.pool_size", 0)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_key", "pool:movies")
	v.SetDefault("redis.movie_prefix", "movie")
	v.SetDefault("redis.history_prefix", "history")

	v.SetDefault("pipeline.file", "")
	v.SetDefault("pipeline.suggest_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate 校验配置取值。
func (s *Settings) Validate() error {
	invalid := func(msg string) error {
		return core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "config: "+msg)
	}
	switch {
	case s.Rank.DefaultLimit <= 0:
		return invalid("rank.default_limit must be positive")
	case s.Rank.MinRated < 0:
		return invalid("rank.min_rated must not be negative")
	case s.Rank.DiversityPerGenre < 0:
		return invalid("rank.diversity_per_genre must not be negative")
	case s.Rank.PoolSize < 0:
		return invalid("rank.pool_size must not be negative")
	case s.Redis.DB < 0:
		return invalid("redis.db must not be negative")
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid(fmt.Sprintf("unknown log.level %q", s.Log.Level))
	}
	switch s.Log.Format {
	case "json", "console":
	default:
		return invalid(fmt.Sprintf("unknown log.format %q", s.Log.Format))
	}
	return nil
}

// RankConfig 把排序配置暴露为 core.RankConfig。
func (s *Settings) RankConfig() core.RankConfig {
	return rankConfig{s: s.Rank}
}

type rankConfig struct {
	s RankSettings
}

func (c rankConfig) DefaultLimit() int   { return c.s.DefaultLimit }
func (c rankConfig) MinRatedMovies() int { return c.s.MinRated }

// LoadPipeline 读取 pipeline.file 并用 factory 构建；未配置文件时返回 nil。
// 节点类型先经 ValidatePipelineConfig 校验。
func (s *Settings) LoadPipeline(factory *pipeline.NodeFactory) (*pipeline.Pipeline, error) {
	return loadPipelineFile(s.Pipeline.File, factory)
}

// LoadSuggestPipeline 读取 pipeline.suggest_file，规则同 LoadPipeline。
func (s *Settings) LoadSuggestPipeline(factory *pipeline.NodeFactory) (*pipeline.Pipeline, error) {
	return loadPipelineFile(s.Pipeline.SuggestFile, factory)
}

func loadPipelineFile(path string, factory *pipeline.NodeFactory) (*pipeline.Pipeline, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := pipeline.LoadFromYAML(path)
	if err != nil {
		return nil, fmt.Errorf("load pipeline %s: %w", path, err)
	}
	if err := ValidatePipelineConfig(cfg); err != nil {
		return nil, fmt.Errorf("load pipeline %s: %w", path, err)
	}
	return cfg.BuildPipeline(factory)
}
