package ids

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) TurnID {
	t.Helper()
	id, err := ParseTurnID(s)
	require.NoError(t, err)
	return id
}

func TestTurnIDTotalOrder(t *testing.T) {
	a := mustID(t, "00000000-0000-0000-0000-000000000001")
	b := mustID(t, "00000000-0000-0000-0000-000000000002")

	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.Equal(t, 0, a.Compare(a))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
}

func TestSortTurnIDsDeterministic(t *testing.T) {
	in := []TurnID{
		mustID(t, "00000000-0000-0000-0000-000000000003"),
		mustID(t, "00000000-0000-0000-0000-000000000001"),
		mustID(t, "00000000-0000-0000-0000-000000000002"),
	}
	SortTurnIDs(in)
	require.Equal(t, []TurnID{
		mustID(t, "00000000-0000-0000-0000-000000000001"),
		mustID(t, "00000000-0000-0000-0000-000000000002"),
		mustID(t, "00000000-0000-0000-0000-000000000003"),
	}, in)
}

func TestParseTurnIDRoundTrip(t *testing.T) {
	id, err := NewTurnID()
	require.NoError(t, err)

	s := id.String()
	parsed, err := ParseTurnID(s)
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseTurnIDRejectsGarbage(t *testing.T) {
	_, err := ParseTurnID("not-a-uuid")
	require.Error(t, err)
}

func TestTurnIDJSON(t *testing.T) {
	id := mustID(t, "11111111-2222-3333-4444-555555555555")
	b, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"11111111-2222-3333-4444-555555555555"`, string(b))

	var out TurnID
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, id, out)
}

func TestIsEmpty(t *testing.T) {
	require.True(t, Empty.IsEmpty())
	id := mustID(t, "00000000-0000-0000-0000-000000000001")
	require.False(t, id.IsEmpty())
}
