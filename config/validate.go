package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lixenwraith/word-fall/arcade"
	"github.com/lixenwraith/word-fall/audio"
)

// Validate performs range checks on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Game.FPS <= 0 || c.Game.FPS > 240 {
		return fmt.Errorf("game.fps must be in (0, 240] (got %d)", c.Game.FPS)
	}
	def := arcade.DefaultConfig()
	if err := c.Arcade(def.Width, def.Height).Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	if err := c.Audio.validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	if c.Content.MinLearned < 0 {
		return fmt.Errorf("content.min_learned must be >= 0 (got %d)", c.Content.MinLearned)
	}
	if c.Content.LearnedFile == "" {
		return fmt.Errorf("content.learned_file must be set")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr must be set when metrics are enabled")
	}

	return nil
}

func (a *AudioConfig) validate() error {
	if a.SampleRate < 8000 || a.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be in [8000, 192000] (got %d)", a.SampleRate)
	}
	for name, v := range map[string]float64{
		"master_volume":    a.MasterVolume,
		"match_volume":     a.MatchVolume,
		"miss_volume":      a.MissVolume,
		"game_over_volume": a.GameOverVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1] (got %v)", name, v)
		}
	}
	return nil
}

// Arcade builds the engine config for a play area of width x height
func (c *Config) Arcade(width, height int) arcade.Config {
	g := c.Game
	cfg := arcade.DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.StartLives = g.StartLives
	cfg.MatchScore = g.MatchScore
	cfg.PointsPerLevel = g.PointsPerLevel
	cfg.SpawnBase = g.SpawnBase
	cfg.SpawnFloor = g.SpawnFloor
	cfg.SpawnDecay = g.SpawnDecay
	cfg.MinSpeed = g.MinSpeed
	cfg.SpeedGrowth = g.SpeedGrowth
	cfg.SpeedJitter = g.SpeedJitter
	cfg.SpawnMargin = g.SpawnMargin
	cfg.HistorySize = g.HistorySize
	cfg.BurstSize = g.BurstSize
	cfg.ParticleDecay = g.ParticleDecay
	cfg.ParticleSpeed = g.ParticleSpeed
	cfg.FlashDuration = g.FlashDuration
	cfg.NearMissThreshold = g.NearMissThreshold
	cfg.Seed = g.Seed
	cfg.MinLearned = c.Content.MinLearned
	return cfg
}

// Player converts the audio section to playback settings
func (a AudioConfig) Player() audio.Config {
	return audio.Config{
		Enabled:      !a.Mute,
		MasterVolume: a.MasterVolume,
		SampleRate:   a.SampleRate,
		Volumes: map[arcade.Cue]float64{
			arcade.CueMatch:    a.MatchVolume,
			arcade.CueMiss:     a.MissVolume,
			arcade.CueGameOver: a.GameOverVolume,
		},
	}
}

// ParseLevel maps debug/info/warn/error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return lvl, nil
}
