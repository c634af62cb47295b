package object

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/aimtrainer/internal/loop/config"
	"github.com/tomz197/aimtrainer/internal/physics"
)

// Intner is the subset of *rand.Rand the spawner needs.
type Intner interface {
	Intn(n int) int
}

// TargetSpawner picks new target positions on a small lattice in front of
// the player, keeping each new position away from the previous one.
type TargetSpawner struct {
	rng         Intner
	minDistance float64
	maxRetries  int
}

// NewTargetSpawner creates a spawner drawing from rng.
// A nil rng uses a time-seeded source.
func NewTargetSpawner(rng Intner) *TargetSpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TargetSpawner{
		rng:         rng,
		minDistance: config.SpawnMinDistance,
		maxRetries:  config.SpawnMaxRetries,
	}
}

// Candidate samples one lattice position without any distance check.
func (s *TargetSpawner) Candidate() mgl64.Vec3 {
	step := config.SpawnLatticeStep
	return mgl64.Vec3{
		float64(s.rng.Intn(7)-3) * step,
		float64(s.rng.Intn(5)-2) * step,
		config.SpawnNearZ - float64(s.rng.Intn(4)),
	}
}

// Next returns a position at least minDistance from current. After
// maxRetries rejected samples the next candidate is taken as-is so the
// call always terminates.
func (s *TargetSpawner) Next(current mgl64.Vec3) mgl64.Vec3 {
	minSq := s.minDistance * s.minDistance
	attempts := 0
	for {
		candidate := s.Candidate()
		if physics.DistanceSquared(candidate, current) >= minSq {
			return candidate
		}
		if attempts >= s.maxRetries {
			return candidate
		}
		attempts++
	}
}

// Respawn moves t to a new position. The radius is a player setting and
// is left alone.
func (s *TargetSpawner) Respawn(t *Target) {
	t.Position = s.Next(t.Position)
}
