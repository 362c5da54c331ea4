package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/sliceexport"
)

func sampleExport(t *testing.T, secret []byte) sliceexport.SliceExport {
	t.Helper()
	anchor, err := ids.ParseTurnID("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)

	export := sliceexport.SliceExport{
		SchemaVersion:     sliceexport.SchemaVersion,
		AnchorTurnID:      anchor,
		PolicyID:          "slice_policy_v1",
		PolicyParamsHash:  "abcdef0123456789",
		GraphSnapshotHash: "deadbeef",
	}
	export.SliceID = "0011223344556677"
	signer := NewSigner(secret)
	export.AdmissibilityToken = signer.Sign(export.CanonicalPayload())
	return export
}

func TestLocalSecretVerifiesValidToken(t *testing.T) {
	secret := []byte("test-secret")
	export := sampleExport(t, secret)

	v := LocalSecret{Secret: secret}
	outcome, err := v.Verify(context.Background(), export)
	require.NoError(t, err)
	require.True(t, outcome.Ok())
}

func TestLocalSecretRejectsWrongSecret(t *testing.T) {
	export := sampleExport(t, []byte("test-secret"))

	v := LocalSecret{Secret: []byte("other-secret")}
	outcome, err := v.Verify(context.Background(), export)
	require.NoError(t, err)
	require.Equal(t, InvalidToken, outcome.Result)
}

func TestLocalSecretRejectsBitFlippedPayload(t *testing.T) {
	secret := []byte("test-secret")
	export := sampleExport(t, secret)
	export.PolicyParamsHash = "abcdef012345678a" // single hex nibble flipped

	v := LocalSecret{Secret: secret}
	outcome, err := v.Verify(context.Background(), export)
	require.NoError(t, err)
	require.Equal(t, InvalidToken, outcome.Result)
}

func TestLocalSecretMalformedOnMissingFields(t *testing.T) {
	v := LocalSecret{Secret: []byte("test-secret")}
	outcome, err := v.Verify(context.Background(), sliceexport.SliceExport{})
	require.NoError(t, err)
	require.Equal(t, Malformed, outcome.Result)
}

func TestCachedVerifierCachesOutcome(t *testing.T) {
	secret := []byte("test-secret")
	export := sampleExport(t, secret)

	c, err := NewCached(secret, 16)
	require.NoError(t, err)

	o1, err := c.Verify(context.Background(), export)
	require.NoError(t, err)
	require.True(t, o1.Ok())
	require.Equal(t, 1, c.Len())

	o2, err := c.Verify(context.Background(), export)
	require.NoError(t, err)
	require.True(t, o2.Ok())
	require.Equal(t, 1, c.Len())
}

func TestCachedVerifierDistinguishesInvalid(t *testing.T) {
	export := sampleExport(t, []byte("test-secret"))
	c, err := NewCached([]byte("other-secret"), 16)
	require.NoError(t, err)

	outcome, err := c.Verify(context.Background(), export)
	require.NoError(t, err)
	require.Equal(t, InvalidToken, outcome.Result)
}

func TestSignerUnconfiguredProducesEmptyToken(t *testing.T) {
	s := NewSigner(nil)
	require.False(t, s.Configured())
	require.Equal(t, "", s.Sign([]byte("payload")))
}

func TestSignIsDeterministic(t *testing.T) {
	s := NewSigner([]byte("test-secret"))
	payload := []byte("canonical-bytes")
	require.Equal(t, s.Sign(payload), s.Sign(payload))
}
