package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/graph"
)

func TestDefaultPolicyValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadFields(t *testing.T) {
	bad := Default()
	bad.MaxNodes = 0
	require.ErrorIs(t, bad.Validate(), ErrInvalidMaxNodes)

	bad = Default()
	bad.MaxRadius = -1
	require.ErrorIs(t, bad.Validate(), ErrInvalidMaxRadius)

	bad = Default()
	bad.SalienceWeight = 1.5
	require.ErrorIs(t, bad.Validate(), ErrInvalidSalienceWeight)

	bad = Default()
	bad.DistanceDecay = -0.1
	require.ErrorIs(t, bad.Validate(), ErrInvalidDistanceDecay)

	bad = Default()
	bad.MaxSiblingsPerNode = -1
	require.ErrorIs(t, bad.Validate(), ErrInvalidMaxSiblings)
}

func TestParamsHashDiffersAcrossDistinctPolicies(t *testing.T) {
	a := Default()
	b := Default()
	b.DistanceDecay = 0.5

	require.NotEqual(t, a.ParamsHash(), b.ParamsHash())
}

func TestParamsHashStableAcrossRuns(t *testing.T) {
	p := Default()
	require.Equal(t, p.ParamsHash(), p.ParamsHash())

	other := Default()
	require.Equal(t, p.ParamsHash(), other.ParamsHash())
}

func TestPriorityZeroDistanceIsIdentity(t *testing.T) {
	p := Default()
	turn := graph.TurnSnapshot{Phase: graph.PhaseSynthesis, Salience: 1.0}
	got := p.Priority(turn, 0)
	want := p.PhaseWeights.Synthesis + 1.0*p.SalienceWeight
	require.InDelta(t, want, got, 1e-9)
}

func TestPriorityDecaysWithDistance(t *testing.T) {
	p := Default()
	turn := graph.TurnSnapshot{Phase: graph.PhaseSynthesis, Salience: 1.0}
	near := p.Priority(turn, 1)
	far := p.Priority(turn, 3)
	require.Greater(t, near, far)
}

func TestPhaseWeightsForEachPhase(t *testing.T) {
	w := DefaultPhaseWeights()
	require.Equal(t, w.Synthesis, w.For(graph.PhaseSynthesis))
	require.Equal(t, w.Planning, w.For(graph.PhasePlanning))
	require.Equal(t, w.Consolidation, w.For(graph.PhaseConsolidation))
	require.Equal(t, w.Debugging, w.For(graph.PhaseDebugging))
	require.Equal(t, w.Exploration, w.For(graph.PhaseExploration))
}

func TestRegistryRegisterIsIdempotentForSamePolicy(t *testing.T) {
	reg := NewRegistry()
	p := Default()

	ref1, err := reg.Register(p)
	require.NoError(t, err)
	ref2, err := reg.Register(p)
	require.NoError(t, err)
	require.Equal(t, ref1, ref2)
}

func TestRegistryRejectsRebindingDifferentParams(t *testing.T) {
	reg := NewRegistry()
	p := Default()
	ref, err := reg.Register(p)
	require.NoError(t, err)

	mutated := p
	mutated.MaxNodes = 512
	mutated.Version = p.Version // same policy_id, different params: same Ref unless ParamsHash differs

	// Force the registry to see the same Ref but different payload by
	// registering under an explicitly constructed, colliding Ref.
	reg.mu.Lock()
	reg.policies[ref] = mutated
	reg.mu.Unlock()

	_, err = reg.Register(p)
	require.Error(t, err)
	var violation *ErrImmutabilityViolation
	require.ErrorAs(t, err, &violation)
}

func TestRegistryGetNotFound(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get(Ref{PolicyID: "slice_policy_v1", ParamsHash: "0000000000000000"})
	require.Error(t, err)
	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestRegistryFingerprintChangesWithContent(t *testing.T) {
	reg := NewRegistry()
	empty := reg.Fingerprint()

	_, err := reg.Register(Default())
	require.NoError(t, err)
	require.NotEqual(t, empty, reg.Fingerprint())
}
