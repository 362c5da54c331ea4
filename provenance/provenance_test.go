package provenance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func completeRecord() Record {
	return Record{
		Timestamp: time.Unix(1000, 0),
		EmbeddingModel: EmbeddingModelRef{
			ModelID: "text-embed", Version: "3", Dimensions: 1536, Deterministic: true,
		},
		Normalization:     Current(),
		Retrieval:         RetrievalParams{K: 10, SimilarityThreshold: 0.75, PolicyID: "slice_policy_v1"},
		GraphSnapshotHash: "deadbeef",
		SliceFingerprint:  "cafebabe",
	}
}

func TestEmbeddingModelRefString(t *testing.T) {
	m := EmbeddingModelRef{ModelID: "text-embed", Version: "3", Dimensions: 1536}
	require.Equal(t, "text-embed@3:d1536", m.String())

	m.Quantization = "int8"
	require.Equal(t, "text-embed@3:d1536:qint8", m.String())
}

func TestIsCompleteTrueForFullRecord(t *testing.T) {
	require.True(t, completeRecord().IsComplete())
}

func TestIsCompleteFalseWhenFieldMissing(t *testing.T) {
	r := completeRecord()
	r.GraphSnapshotHash = ""
	require.False(t, r.IsComplete())
}

func TestFingerprintIgnoresTimestamp(t *testing.T) {
	r1 := completeRecord()
	r2 := completeRecord()
	r2.Timestamp = r1.Timestamp.Add(time.Hour)

	require.Equal(t, r1.Fingerprint(), r2.Fingerprint())
	require.True(t, r1.IsReplayCompatible(r2))
}

func TestFingerprintSensitiveToRetrievalParams(t *testing.T) {
	r1 := completeRecord()
	r2 := completeRecord()
	r2.Retrieval.K = r1.Retrieval.K + 1

	require.NotEqual(t, r1.Fingerprint(), r2.Fingerprint())
	require.False(t, r1.IsReplayCompatible(r2))
}

func TestCurrentReferencesCanonicalVersion(t *testing.T) {
	require.NotEmpty(t, Current().Version)
}

func TestValidateNilForCompleteRecord(t *testing.T) {
	require.NoError(t, completeRecord().Validate())
}

func TestValidateNamesEveryMissingField(t *testing.T) {
	r := completeRecord()
	r.GraphSnapshotHash = ""
	r.SliceFingerprint = ""
	r.Retrieval.K = 0
	r.EmbeddingModel.ModelID = ""

	err := r.Validate()
	require.Error(t, err)

	var provErr *ProvenanceError
	require.True(t, errors.As(err, &provErr))
	require.ElementsMatch(t, []string{
		"embedding_model.model_id",
		"retrieval.k",
		"graph_snapshot_hash",
		"slice_fingerprint",
	}, provErr.MissingFields)
}

func TestValidateReportsSingleMissingField(t *testing.T) {
	r := completeRecord()
	r.SliceFingerprint = ""

	var provErr *ProvenanceError
	require.True(t, errors.As(r.Validate(), &provErr))
	require.Equal(t, []string{"slice_fingerprint"}, provErr.MissingFields)
}
