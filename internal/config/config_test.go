package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), "errors: %v", res.Errors)
}

func TestDefaultWeightsMatchCanonicalConstants(t *testing.T) {
	w := Default().Ranking.Weights
	assert.Equal(t, 0.3, w.TitleMatch)
	assert.Equal(t, 0.2, w.CompanyMatch)
	assert.Equal(t, 0.1, w.DescriptionMatch)
	assert.Equal(t, 0.2, w.SkillMatch)
	assert.Equal(t, 0.3, w.RemoteCap)
}

func TestNormalizeAndValidate(t *testing.T) {
	t.Run("trims and dedups keyword lists", func(t *testing.T) {
		cfg := Default()
		cfg.Filters.KeywordsAllow = []string{" go ", "go", "", "Rust"}
		out, res := NormalizeAndValidate(cfg)
		require.True(t, res.OK())
		assert.Equal(t, []string{"go", "Rust"}, out.Filters.KeywordsAllow)
	})

	t.Run("rejects bad port", func(t *testing.T) {
		cfg := Default()
		cfg.App.Port = 0
		_, res := NormalizeAndValidate(cfg)
		assert.False(t, res.OK())
	})

	t.Run("rejects negative ranking weight", func(t *testing.T) {
		cfg := Default()
		cfg.Ranking.Weights.TitleMatch = -1
		_, res := NormalizeAndValidate(cfg)
		assert.False(t, res.OK())
	})

	t.Run("warns when no sources enabled", func(t *testing.T) {
		cfg := Default()
		cfg.Sources.RemoteOK.Enabled = false
		cfg.Sources.Remotive.Enabled = false
		cfg.Sources.WeWorkRemotely.Enabled = false
		_, res := NormalizeAndValidate(cfg)
		assert.True(t, res.OK())
		assert.NotEmpty(t, res.Warnings)
	})

	t.Run("enrich fields required when enabled", func(t *testing.T) {
		cfg := Default()
		cfg.Enrich.Enabled = true
		cfg.Enrich.Model = ""
		_, res := NormalizeAndValidate(cfg)
		assert.False(t, res.OK())
	})
}

func TestEnsureUserConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().App.Port, cfg.App.Port)
	assert.Equal(t, Default().Ranking.Weights, cfg.Ranking.Weights)

	// Second call leaves the existing file alone.
	cfg.App.Port = 9999
	require.NoError(t, SaveAtomic(path, cfg))
	path2, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	reloaded, err := Load(path2)
	require.NoError(t, err)
	assert.Equal(t, 9999, reloaded.App.Port)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
