package arcade

import (
	"errors"
	"fmt"
	"time"
)

// Frame is the nominal simulation step; speeds and decay rates are expressed per Frame
const Frame = time.Second / 60

// Config holds the difficulty curve and presentation tuning of a session
type Config struct {
	// Play area in cells
	Width  int
	Height int

	StartLives     int
	MatchScore     int
	PointsPerLevel int

	// Spawn interval: max(SpawnFloor, SpawnBase - score*SpawnDecay)
	SpawnBase  time.Duration
	SpawnFloor time.Duration
	SpawnDecay time.Duration // per score point

	// Falling speed in rows per Frame: MinSpeed + score*SpeedGrowth + [0, SpeedJitter)
	MinSpeed    float64
	SpeedGrowth float64
	SpeedJitter float64

	// Horizontal cells kept free right of a spawned word
	SpawnMargin int

	HistorySize int

	// Pool below this many learned words is padded with the fallback list
	MinLearned int

	BurstSize     int
	ParticleDecay float64 // life lost per Frame, life starts at 1
	ParticleSpeed float64 // max burst velocity in cells per Frame

	FlashDuration time.Duration

	// Jaro-Winkler similarity at or above which a rejected submit counts as a near miss
	NearMissThreshold float64

	// Seed 0 seeds from the clock
	Seed int64
}

// DefaultConfig returns the stock difficulty curve
func DefaultConfig() Config {
	return Config{
		Width:             80,
		Height:            22,
		StartLives:        3,
		MatchScore:        10,
		PointsPerLevel:    100,
		SpawnBase:         3000 * time.Millisecond,
		SpawnFloor:        800 * time.Millisecond,
		SpawnDecay:        10 * time.Millisecond,
		MinSpeed:          0.02,
		SpeedGrowth:       0.0002,
		SpeedJitter:       0.01,
		SpawnMargin:       2,
		HistorySize:       20,
		MinLearned:        10,
		BurstSize:         12,
		ParticleDecay:     0.04,
		ParticleSpeed:     0.6,
		FlashDuration:     150 * time.Millisecond,
		NearMissThreshold: 0.85,
	}
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("arcade: play area %dx%d must be positive", c.Width, c.Height)
	case c.StartLives <= 0:
		return errors.New("arcade: start lives must be positive")
	case c.MatchScore <= 0 || c.PointsPerLevel <= 0:
		return errors.New("arcade: match score and points per level must be positive")
	case c.SpawnFloor <= 0 || c.SpawnBase < c.SpawnFloor:
		return fmt.Errorf("arcade: spawn interval range [%s, %s] is invalid", c.SpawnFloor, c.SpawnBase)
	case c.SpawnDecay < 0:
		return errors.New("arcade: spawn decay must not be negative")
	case c.MinSpeed <= 0 || c.SpeedGrowth < 0 || c.SpeedJitter < 0:
		return errors.New("arcade: speeds must be positive")
	case c.HistorySize < 0 || c.SpawnMargin < 0 || c.BurstSize < 0:
		return errors.New("arcade: history size, margin and burst size must not be negative")
	case c.ParticleDecay <= 0:
		return errors.New("arcade: particle decay must be positive")
	case c.NearMissThreshold < 0 || c.NearMissThreshold > 1:
		return fmt.Errorf("arcade: near miss threshold %.2f outside [0, 1]", c.NearMissThreshold)
	}
	return nil
}

// SpawnInterval returns the spawn interval for a score, clamped to [SpawnFloor, SpawnBase]
func (c Config) SpawnInterval(score int) time.Duration {
	interval := c.SpawnBase - time.Duration(score)*c.SpawnDecay
	if interval < c.SpawnFloor {
		return c.SpawnFloor
	}
	if interval > c.SpawnBase {
		return c.SpawnBase
	}
	return interval
}

// BaseSpeed returns the falling speed before jitter for a score
func (c Config) BaseSpeed(score int) float64 {
	return c.MinSpeed + float64(score)*c.SpeedGrowth
}

// Level derives the displayed level from score
func (c Config) Level(score int) int {
	return score/c.PointsPerLevel + 1
}
