package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/ids"
)

func testTurnID(t *testing.T) ids.TurnID {
	t.Helper()
	id, err := ids.ParseTurnID("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	return id
}

func TestCanonicalContentNormalizesLineEndings(t *testing.T) {
	require.Equal(t, "a\nb", CanonicalContent("a\r\nb"))
	require.Equal(t, "a\nb", CanonicalContent("a\nb"))
	require.Equal(t, "a\nb", CanonicalContent("a\rb"))
	require.Equal(t, "a\nb", CanonicalContent("  a\nb  "))
}

func TestHashIdenticalAcrossEquivalentLineEndings(t *testing.T) {
	h1, ok1 := Hash("a\r\nb")
	h2, ok2 := Hash("a\nb")
	h3, ok3 := Hash("  a\nb  ")

	require.True(t, ok1)
	require.True(t, ok2)
	require.True(t, ok3)
	require.Equal(t, h1, h2)
	require.Equal(t, h2, h3)
}

func TestHashAbsentForEmptyCanonicalContent(t *testing.T) {
	_, ok := Hash("")
	require.False(t, ok)

	_, ok = Hash("   \r\n\r\n  ")
	require.False(t, ok)
}

func TestHashIsLowercaseHex64(t *testing.T) {
	h, ok := Hash("hello world")
	require.True(t, ok)
	require.Len(t, h, 64)
	for _, r := range h {
		require.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
	}
}

func TestVerifySucceedsWhenHashMatches(t *testing.T) {
	stored, ok := Hash("a\r\nb")
	require.True(t, ok)
	require.NoError(t, Verify(testTurnID(t), "a\nb", stored))
}

func TestVerifySucceedsWhenStoredIsAbsent(t *testing.T) {
	require.NoError(t, Verify(testTurnID(t), "anything", ""))
}

func TestVerifyFailsOnMismatchWithTypedError(t *testing.T) {
	id := testTurnID(t)
	err := Verify(id, "actual content", "0000000000000000000000000000000000000000000000000000000000000000")
	require.Error(t, err)

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, id, mismatch.TurnID)
	require.Equal(t, "0000000000000000000000000000000000000000000000000000000000000000", mismatch.Stored)
	require.NotEmpty(t, mismatch.Computed)
}
