package bundle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/policy"
	"github.com/luxfi/graphkernel/slicer"
	"github.com/luxfi/graphkernel/sliceexport"
	"github.com/luxfi/graphkernel/store/memstore"
	"github.com/luxfi/graphkernel/token"
)

func buildExport(t *testing.T, secret []byte) sliceexport.SliceExport {
	t.Helper()
	s := memstore.New()
	id1, err := ids.ParseTurnID("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	turn := graph.TurnSnapshot{ID: id1, Phase: graph.PhaseExploration}
	s.AddTurn(turn)

	sl := slicer.New(s, nil, token.NewSigner(secret))
	export, err := sl.Slice(context.Background(), id1, policy.Default())
	require.NoError(t, err)
	return export
}

func TestFromVerifiedSucceedsUnderCorrectSecret(t *testing.T) {
	secret := []byte("bundle-secret")
	export := buildExport(t, secret)

	b, err := FromVerified(context.Background(), export, secret)
	require.NoError(t, err)
	require.True(t, b.IsTurnAdmissible(export.AnchorTurnID))
	require.Equal(t, export.SliceID, b.SliceID())
}

func TestFromVerifiedFailsUnderWrongSecret(t *testing.T) {
	secret := []byte("bundle-secret")
	export := buildExport(t, secret)

	b, err := FromVerified(context.Background(), export, []byte("wrong-secret"))
	require.Error(t, err)
	require.Nil(t, b)
	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
}

func TestFromVerifiedFailsOnMutatedTurns(t *testing.T) {
	secret := []byte("bundle-secret")
	export := buildExport(t, secret)

	mutated := export
	mutated.Turns = append([]graph.TurnSnapshot(nil), export.Turns...)
	mutated.Turns[0].ID[15] ^= 0x01

	b, err := FromVerified(context.Background(), mutated, secret)
	require.Error(t, err)
	require.Nil(t, b)
}

func TestIsTurnAdmissibleMatchesSliceMembership(t *testing.T) {
	secret := []byte("bundle-secret")
	export := buildExport(t, secret)

	b, err := FromVerified(context.Background(), export, secret)
	require.NoError(t, err)

	other, err := ids.ParseTurnID("00000000-0000-0000-0000-0000000000ff")
	require.NoError(t, err)
	require.False(t, b.IsTurnAdmissible(other))
}
