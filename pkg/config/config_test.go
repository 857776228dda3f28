package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, validate.Struct(cfg))
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Decoder.BandWidth = 20
	cfg.Dict.MaxVocabulary = 5000
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Decoder.BandWidth)
	assert.Equal(t, 5000, loaded.Dict.MaxVocabulary)
	assert.Equal(t, cfg.Decoder.ResampleN, loaded.Decoder.ResampleN)
}

func TestLoadRejectsOutOfRangeAfterFullParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	contents := `
[decoder]
resample_n = 64
band_width = 10
geometric_top_n = 50
final_top_n = 3
endpoint_radius = 0.12

[dict]
min_word_length = 2
max_vocabulary = 0
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRecoversPartialOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	// band_width is given as a string, which fails the typed decode; the
	// dict section is well-formed and should still be recovered.
	contents := `
[decoder]
band_width = "ten"

[dict]
max_vocabulary = 2000
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Dict.MaxVocabulary)
	assert.Equal(t, DefaultConfig().Decoder.BandWidth, cfg.Decoder.BandWidth)
}

func TestLoadRecoversAllDefaultsOnUnparsableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg, err := initConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestLoadWithPriorityPrefersCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")

	cfg := DefaultConfig()
	cfg.Decoder.FinalTopN = 7
	require.NoError(t, Save(cfg, path))

	loaded, usedPath, err := LoadWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, usedPath)
	assert.Equal(t, 7, loaded.Decoder.FinalTopN)
}
