// Package config loads word-fall settings from a YAML file, WORDFALL_* environment
// variables and built-in defaults.
package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Audio   AudioConfig   `yaml:"audio"`
	Content ContentConfig `yaml:"content"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// GameConfig holds the difficulty curve and feedback tuning.
type GameConfig struct {
	FPS               int           `yaml:"fps"                 env:"WORDFALL_GAME_FPS"                 env-default:"60"`
	StartLives        int           `yaml:"start_lives"         env:"WORDFALL_GAME_START_LIVES"         env-default:"3"`
	MatchScore        int           `yaml:"match_score"         env:"WORDFALL_GAME_MATCH_SCORE"         env-default:"10"`
	PointsPerLevel    int           `yaml:"points_per_level"    env:"WORDFALL_GAME_POINTS_PER_LEVEL"    env-default:"100"`
	SpawnBase         time.Duration `yaml:"spawn_base"          env:"WORDFALL_GAME_SPAWN_BASE"          env-default:"3s"`
	SpawnFloor        time.Duration `yaml:"spawn_floor"         env:"WORDFALL_GAME_SPAWN_FLOOR"         env-default:"800ms"`
	SpawnDecay        time.Duration `yaml:"spawn_decay"         env:"WORDFALL_GAME_SPAWN_DECAY"         env-default:"10ms"`
	MinSpeed          float64       `yaml:"min_speed"           env:"WORDFALL_GAME_MIN_SPEED"           env-default:"0.02"`
	SpeedGrowth       float64       `yaml:"speed_growth"        env:"WORDFALL_GAME_SPEED_GROWTH"        env-default:"0.0002"`
	SpeedJitter       float64       `yaml:"speed_jitter"        env:"WORDFALL_GAME_SPEED_JITTER"        env-default:"0.01"`
	SpawnMargin       int           `yaml:"spawn_margin"        env:"WORDFALL_GAME_SPAWN_MARGIN"        env-default:"2"`
	HistorySize       int           `yaml:"history_size"        env:"WORDFALL_GAME_HISTORY_SIZE"        env-default:"20"`
	BurstSize         int           `yaml:"burst_size"          env:"WORDFALL_GAME_BURST_SIZE"          env-default:"12"`
	ParticleDecay     float64       `yaml:"particle_decay"      env:"WORDFALL_GAME_PARTICLE_DECAY"      env-default:"0.04"`
	ParticleSpeed     float64       `yaml:"particle_speed"      env:"WORDFALL_GAME_PARTICLE_SPEED"      env-default:"0.6"`
	FlashDuration     time.Duration `yaml:"flash_duration"      env:"WORDFALL_GAME_FLASH_DURATION"      env-default:"150ms"`
	NearMissThreshold float64       `yaml:"near_miss_threshold" env:"WORDFALL_GAME_NEAR_MISS_THRESHOLD" env-default:"0.85"`
	Seed              int64         `yaml:"seed"                env:"WORDFALL_GAME_SEED"                env-default:"0"`
}

// AudioConfig holds sound cue settings. Volumes are 0.0-1.0; a zero value
// falls back to the default, so silence is expressed with Mute.
type AudioConfig struct {
	Mute           bool    `yaml:"mute"             env:"WORDFALL_AUDIO_MUTE"             env-default:"false"`
	MasterVolume   float64 `yaml:"master_volume"    env:"WORDFALL_AUDIO_MASTER_VOLUME"    env-default:"0.5"`
	SampleRate     int     `yaml:"sample_rate"      env:"WORDFALL_AUDIO_SAMPLE_RATE"      env-default:"44100"`
	MatchVolume    float64 `yaml:"match_volume"     env:"WORDFALL_AUDIO_MATCH_VOLUME"     env-default:"0.6"`
	MissVolume     float64 `yaml:"miss_volume"      env:"WORDFALL_AUDIO_MISS_VOLUME"      env-default:"0.5"`
	GameOverVolume float64 `yaml:"game_over_volume" env:"WORDFALL_AUDIO_GAME_OVER_VOLUME" env-default:"0.7"`
}

// ContentConfig holds vocabulary locations.
type ContentConfig struct {
	AssetsDir   string `yaml:"assets_dir"   env:"WORDFALL_CONTENT_ASSETS_DIR"   env-default:"./assets"`
	LearnedFile string `yaml:"learned_file" env:"WORDFALL_CONTENT_LEARNED_FILE" env-default:"./learned.yaml"`
	MinLearned  int    `yaml:"min_learned"  env:"WORDFALL_CONTENT_MIN_LEARNED"  env-default:"10"`
}

// LogConfig holds logging settings. Logs are written only when File is set.
type LogConfig struct {
	Level string `yaml:"level" env:"WORDFALL_LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"WORDFALL_LOG_FILE"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"WORDFALL_METRICS_ENABLED" env-default:"false"`
	Addr    string `yaml:"addr"    env:"WORDFALL_METRICS_ADDR"    env-default:"127.0.0.1:9464"`
}
