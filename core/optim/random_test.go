package optim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomRequiresSource(t *testing.T) {
	_, err := NewRandom(DefaultParams(), nil, nil)
	require.Error(t, err)
}

func TestRandomSeededRunsReproduce(t *testing.T) {
	inst := chainInstance()

	build := func(seed int64) float64 {
		h, err := NewRandom(DefaultParams(), rand.New(rand.NewSource(seed)), nil)
		require.NoError(t, err)
		return h.Build(inst).Evaluate()
	}

	first := build(42)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, build(42))
	}
}

func TestRandomBuildsCompleteSchedule(t *testing.T) {
	inst := chainInstance()
	h, err := NewRandom(DefaultParams(), rand.New(rand.NewSource(7)), nil)
	require.NoError(t, err)

	sol := h.Build(inst)
	require.True(t, sol.IsFeasible(), "violations: %v", sol.Violations())
	for _, op := range inst.Operations() {
		require.True(t, op.Assigned())
	}
}
