package arcade

import (
	"math"
	"time"
)

var particlePalette = []uint32{0xFFD700, 0xFFA500, 0x7CFC00, 0x00CED1, 0xFF69B4}

// Tick advances the world by dt. Order within a tick is fixed:
// spawn check, item fall and bottom collisions, particles.
// Finished sessions ignore ticks.
func (s *Session) Tick(dt time.Duration) {
	if s.phase != PhasePlaying || dt <= 0 {
		return
	}
	s.elapsed += dt
	steps := float64(dt) / float64(Frame)

	if s.flash > 0 {
		s.flash -= dt
	}

	s.updateSpawn(dt)
	s.updateItems(steps)
	if s.phase != PhasePlaying {
		return
	}
	s.updateParticles(steps)
}

// updateItems moves every item once and drops those past the bottom edge.
// Reverse order keeps indices valid across removal.
func (s *Session) updateItems(steps float64) {
	bottom := float64(s.cfg.Height)
	for i := len(s.items) - 1; i >= 0; i-- {
		s.items[i].Y += s.items[i].Speed * steps
		if s.items[i].Y < bottom {
			continue
		}

		missed := s.items[i]
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.loseLife(&missed)
		if s.phase != PhasePlaying {
			return
		}
	}
}

func (s *Session) loseLife(item *FallingItem) {
	if s.lives > 0 {
		s.lives--
	}
	s.struggle(item.Origin).Misses++
	s.flash = s.cfg.FlashDuration
	s.emit(EventMiss, item)

	if s.lives > 0 {
		s.play(CueMiss)
		return
	}

	s.phase = PhaseGameOver
	s.flash = 0
	s.emit(EventGameOver, nil)
	s.play(CueGameOver)
}

func (s *Session) updateParticles(steps float64) {
	for i := len(s.particles) - 1; i >= 0; i-- {
		p := &s.particles[i]
		p.X += p.VX * steps
		p.Y += p.VY * steps
		p.Life -= s.cfg.ParticleDecay * steps
		if p.Life <= 0 {
			s.particles = append(s.particles[:i], s.particles[i+1:]...)
		}
	}
}

// burst scatters BurstSize particles evenly around (x, y) with random speed
func (s *Session) burst(x, y float64) {
	n := s.cfg.BurstSize
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		speed := s.cfg.ParticleSpeed * (0.5 + 0.5*s.rng.Float64())
		s.particles = append(s.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed * 2, // cells are about twice as tall as wide
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Color: particlePalette[s.rng.Intn(len(particlePalette))],
		})
	}
}
