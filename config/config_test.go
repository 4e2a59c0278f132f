package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/roombg/background"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roombg.yaml")
	data := []byte("room_file: rooms/lobby.yaml\nfade_frames: 30\nwatch: false\nmetrics_addr: 127.0.0.1:9464\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rooms/lobby.yaml", cfg.RoomFile)
	assert.Equal(t, 30, cfg.FadeFrames)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
	assert.Equal(t, "covers", cfg.CoversDir, "unset keys keep defaults")
	assert.Equal(t, background.DefaultBlurSigma, cfg.BlurSigma)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"negative_fade": "fade_frames: -1\n",
		"zero_scale":    "background_scale: 0\n",
		"wide_blur":     "blur_sigma: 30\n",
		"bad_level":     "log_level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fade_frames: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestScreenOptions(t *testing.T) {
	cfg := Default()
	cfg.SlideFrames = 12
	opts := cfg.ScreenOptions()
	assert.Equal(t, background.DefaultFadeFrames, opts.FadeFrames)
	assert.Equal(t, 12, opts.SlideFrames)
	assert.Equal(t, background.DefaultBackgroundScale, opts.BackgroundScale)
	assert.Nil(t, opts.Shader)
}
