package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

func id(t *testing.T, s string) ids.TurnID {
	t.Helper()
	parsed, err := ids.ParseTurnID(s)
	require.NoError(t, err)
	return parsed
}

func TestQuantizeFloat(t *testing.T) {
	require.Equal(t, int64(300000), QuantizeFloat(0.3))
	require.Equal(t, int64(1000000), QuantizeFloat(1.0))
	require.Equal(t, int64(0), QuantizeFloat(0.0))
	require.Equal(t, int64(-500000), QuantizeFloat(-0.5))
}

func TestSlicePayloadDeterministic(t *testing.T) {
	anchor := id(t, "00000000-0000-0000-0000-000000000001")
	turnIDs := []ids.TurnID{anchor}
	edges := []graph.Edge{}

	p1 := SlicePayload(anchor, turnIDs, edges, "slice_policy_v1", "abcdef0123456789", "1.0.0", "deadbeef")
	p2 := SlicePayload(anchor, turnIDs, edges, "slice_policy_v1", "abcdef0123456789", "1.0.0", "deadbeef")
	require.Equal(t, p1, p2)
	require.NotContains(t, string(p1), " ")
}

func TestSlicePayloadSensitiveToPolicyParamsHash(t *testing.T) {
	anchor := id(t, "00000000-0000-0000-0000-000000000001")
	turnIDs := []ids.TurnID{anchor}
	var edges []graph.Edge

	pA := SlicePayload(anchor, turnIDs, edges, "slice_policy_v1", "aaaaaaaaaaaaaaaa", "1.0.0", "deadbeef")
	pB := SlicePayload(anchor, turnIDs, edges, "slice_policy_v1", "bbbbbbbbbbbbbbbb", "1.0.0", "deadbeef")
	require.NotEqual(t, SliceID(pA), SliceID(pB))
}

func TestSlicePayloadInsensitiveToTrajectoryScores(t *testing.T) {
	// sorted_turn_ids only carries ids, not scores, so two turns differing
	// only in salience/trajectory fields must fingerprint identically once
	// selected into the same id set.
	anchor := id(t, "00000000-0000-0000-0000-000000000001")
	low := graph.TurnSnapshot{ID: anchor, Salience: 0.1, TrajectoryHomogeneity: 0.2, TrajectoryComplexity: 1.0}
	high := graph.TurnSnapshot{ID: anchor, Salience: 0.9, TrajectoryHomogeneity: 0.8, TrajectoryComplexity: 5.0}
	var edges []graph.Edge

	p1 := SlicePayload(anchor, []ids.TurnID{low.ID}, edges, "slice_policy_v1", "abcdef0123456789", "1.0.0", "deadbeef")
	p2 := SlicePayload(anchor, []ids.TurnID{high.ID}, edges, "slice_policy_v1", "abcdef0123456789", "1.0.0", "deadbeef")
	require.Equal(t, SliceID(p1), SliceID(p2))
}

func TestSliceIDIs16HexChars(t *testing.T) {
	anchor := id(t, "00000000-0000-0000-0000-000000000001")
	payload := SlicePayload(anchor, []ids.TurnID{anchor}, nil, "slice_policy_v1", "abcdef0123456789", "1.0.0", "deadbeef")
	sid := SliceID(payload)
	require.Len(t, sid, 16)
	for _, r := range sid {
		require.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
	}
}

func TestTurnFingerprintFieldsNullMarkerForAbsentHash(t *testing.T) {
	turn := graph.TurnSnapshot{ID: id(t, "00000000-0000-0000-0000-000000000001")}
	b := TurnFingerprintFields(turn)
	require.Contains(t, string(b), ",null,")
}

func TestTurnFingerprintFieldsUseContentHashWhenPresent(t *testing.T) {
	h := "a" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abc"
	turn := graph.TurnSnapshot{ID: id(t, "00000000-0000-0000-0000-000000000001"), ContentHash: &h}
	b := TurnFingerprintFields(turn)
	require.Contains(t, string(b), `"`+h+`"`)
}
