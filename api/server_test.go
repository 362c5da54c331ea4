package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/policy"
	"github.com/luxfi/graphkernel/slicer"
	"github.com/luxfi/graphkernel/store/memstore"
	"github.com/luxfi/graphkernel/token"
)

func newTestServer(t *testing.T) (*Server, ids.TurnID) {
	t.Helper()
	s := memstore.New()
	anchor, err := ids.ParseTurnID("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	s.AddTurn(graph.TurnSnapshot{ID: anchor})

	secret := []byte("api-secret")
	reg := policy.NewRegistry()
	_, err = reg.Register(policy.Default())
	require.NoError(t, err)

	return &Server{
		Slicer:   slicer.New(s, nil, token.NewSigner(secret)),
		Registry: reg,
		Verifier: token.LocalSecret{Secret: secret},
	}, anchor
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	mux := srv.Mux()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
}

func TestHandleSliceSuccess(t *testing.T) {
	srv, anchor := newTestServer(t)
	mux := srv.Mux()

	body, _ := json.Marshal(sliceRequest{AnchorTurnID: anchor.String()})
	req := httptest.NewRequest("POST", "/api/slice", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
}

func TestHandleSliceAnchorNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	mux := srv.Mux()

	missing, err := ids.ParseTurnID("00000000-0000-0000-0000-0000000000ff")
	require.NoError(t, err)

	body, _ := json.Marshal(sliceRequest{AnchorTurnID: missing.String()})
	req := httptest.NewRequest("POST", "/api/slice", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, 404, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "ANCHOR_NOT_FOUND", resp.Error.Name)
}

func TestHandleSliceInvalidTurnID(t *testing.T) {
	srv, _ := newTestServer(t)
	mux := srv.Mux()

	body, _ := json.Marshal(sliceRequest{AnchorTurnID: "not-a-uuid"})
	req := httptest.NewRequest("POST", "/api/slice", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, 400, rec.Code)
}

func TestHandlePoliciesListAndRegister(t *testing.T) {
	srv, _ := newTestServer(t)
	mux := srv.Mux()

	listReq := httptest.NewRequest("GET", "/api/policies", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, listReq)
	require.Equal(t, 200, listRec.Code)

	newPolicy := policy.Default()
	newPolicy.MaxNodes = 42
	body, _ := json.Marshal(policyRegisterRequest{Policy: newPolicy})
	regReq := httptest.NewRequest("POST", "/api/policies", bytes.NewReader(body))
	regRec := httptest.NewRecorder()
	mux.ServeHTTP(regRec, regReq)
	require.Equal(t, 200, regRec.Code)
}

func TestHandleVerifyToken(t *testing.T) {
	srv, anchor := newTestServer(t)
	mux := srv.Mux()

	export, err := srv.Slicer.Slice(context.Background(), anchor, policy.Default())
	require.NoError(t, err)

	body, _ := json.Marshal(export)
	req := httptest.NewRequest("POST", "/api/verify_token", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
}
