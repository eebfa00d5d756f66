package optim

import (
	"errors"
	"math/rand"

	"github.com/maelqr/ecosched/core/logger"
	"github.com/maelqr/ecosched/core/shop"
)

// Random follows the same per-step structure as Greedy but picks the
// operation and its machine uniformly at random from the ready and
// admissible sets. The random source is injected, never global, so seeded
// runs reproduce exactly and independent runs cannot interfere.
type Random struct {
	Params Params
	Log    logger.Logger
	rng    *rand.Rand
}

// NewRandom returns a randomized builder using the given source.
func NewRandom(params Params, rng *rand.Rand, log logger.Logger) (*Random, error) {
	if rng == nil {
		return nil, errors.New("optim: nil random source")
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Random{Params: params, Log: log, rng: rng}, nil
}

// Build constructs a schedule on a fresh solution over inst.
func (r *Random) Build(inst *shop.Instance) *shop.Solution {
	sol := newSolution(inst, r.Params)
	for {
		ready := sol.AvailableOperations()
		if len(ready) == 0 {
			break
		}

		// Only operations with at least one admissible machine can be drawn.
		var candidates []*shop.Operation
		for _, op := range ready {
			if len(op.Options()) > 0 {
				candidates = append(candidates, op)
			}
		}
		if len(candidates) == 0 {
			r.Log.Warnf("random: no admissible pair for %d ready operations, stopping with a partial schedule", len(ready))
			break
		}
		op := candidates[r.rng.Intn(len(candidates))]

		var machines []*shop.Machine
		for _, m := range inst.Machines() {
			if _, ok := op.Option(m.ID()); ok {
				machines = append(machines, m)
			}
		}
		m := machines[r.rng.Intn(len(machines))]

		powerDownBeforeGap(m, op)
		if err := sol.Schedule(op, m); err != nil {
			r.Log.Errorf("random: schedule J%d/O%d on machine %d: %v", op.JobID(), op.ID(), m.ID(), err)
			break
		}
	}
	return sol
}
