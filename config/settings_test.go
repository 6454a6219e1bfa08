package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/flickpick/core"
	"github.com/rushteam/flickpick/pipeline"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Rank.DefaultLimit)
	assert.Equal(t, 3, s.Rank.MinRated)
	assert.Equal(t, "pool:movies", s.Redis.PoolKey)
	assert.Equal(t, "history", s.Redis.HistoryPrefix)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, 10, s.RankConfig().DefaultLimit())
	assert.Equal(t, 3, s.RankConfig().MinRatedMovies())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "flickpick.yaml", `
rank:
  default_limit: 5
  diversity_per_genre: 2
redis:
  addr: localhost:6379
log:
  format: json
`)
	t.Setenv("FLICKPICK_RANK_MIN_RATED", "4")
	t.Setenv("FLICKPICK_LOG_LEVEL", "debug")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Rank.DefaultLimit)
	assert.Equal(t, 2, s.Rank.DiversityPerGenre)
	assert.Equal(t, 4, s.Rank.MinRated)
	assert.Equal(t, "localhost:6379", s.Redis.Addr)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			Rank: RankSettings{DefaultLimit: 10, MinRated: 3},
			Log:  LogSettings{Level: "info", Format: "console"},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "zero limit", mutate: func(s *Settings) { s.Rank.DefaultLimit = 0 }},
		{name: "negative min rated", mutate: func(s *Settings) { s.Rank.MinRated = -1 }},
		{name: "negative diversity", mutate: func(s *Settings) { s.Rank.DiversityPerGenre = -1 }},
		{name: "negative pool size", mutate: func(s *Settings) { s.Rank.PoolSize = -1 }},
		{name: "negative db", mutate: func(s *Settings) { s.Redis.DB = -1 }},
		{name: "bad level", mutate: func(s *Settings) { s.Log.Level = "trace" }},
		{name: "bad format", mutate: func(s *Settings) { s.Log.Format = "xml" }},
	}

	ok := valid()
	require.NoError(t, ok.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}

type nopNode struct{}

func (nopNode) Name() string        { return "nop" }
func (nopNode) Kind() pipeline.Kind { return pipeline.KindReRank }
func (nopNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.ScoredMovie) ([]*core.ScoredMovie, error) {
	return items, nil
}

func TestSettings_LoadPipeline(t *testing.T) {
	Register("test.nop", func(map[string]any) (pipeline.Node, error) { return nopNode{}, nil })

	s := &Settings{}
	p, err := s.LoadPipeline(DefaultFactory())
	require.NoError(t, err)
	assert.Nil(t, p)

	s.Pipeline.File = writeFile(t, "pipeline.yaml", "pipeline:\n  name: t\n  nodes:\n    - type: test.nop\n")
	p, err = s.LoadPipeline(DefaultFactory())
	require.NoError(t, err)
	require.Len(t, p.Nodes, 1)

	s.Pipeline.File = writeFile(t, "bad.yaml", "pipeline:\n  nodes:\n    - type: test.missing\n")
	_, err = s.LoadPipeline(DefaultFactory())
	assert.Error(t, err)
	p, err = s.LoadSuggestPipeline(DefaultFactory())
	require.NoError(t, err)
	assert.Nil(t, p)

	s.Pipeline.SuggestFile = writeFile(t, "suggest.yaml", "pipeline:\n  nodes:\n    - type: test.nop\n    - type: test.nop\n")
	p, err = s.LoadSuggestPipeline(DefaultFactory())
	require.NoError(t, err)
	require.Len(t, p.Nodes, 2)

	s.Pipeline.SuggestFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = s.LoadSuggestPipeline(DefaultFactory())
	assert.Error(t, err)
}
