// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api implements the REST surface of spec §6: health, slice
// issuance (single and batch), token verification, and policy
// registration/listing. Handlers are plain net/http, following the
// teacher's http.ServeMux-based wiring, with WriteJSON/WriteError carried
// over from this package's own response helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luxfi/graphkernel/gklog"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/policy"
	"github.com/luxfi/graphkernel/sliceexport"
	"github.com/luxfi/graphkernel/slicer"
	"github.com/luxfi/graphkernel/token"
)

// SchemaVersion is the wire schema version reported by /health (spec §6
// GRAPH_KERNEL_SCHEMA_VERSION).
const SchemaVersion = sliceexport.SchemaVersion

// Server wires the slicer, policy registry, and verifier behind the REST
// surface of spec §6.
type Server struct {
	Slicer   *slicer.Slicer
	Registry *policy.Registry
	Verifier token.Verifier
	Log      gklog.Logger
}

// Mux builds the net/http.ServeMux this server answers on.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/slice", s.handleSlice)
	mux.HandleFunc("POST /api/slice/batch", s.handleSliceBatch)
	mux.HandleFunc("POST /api/verify_token", s.handleVerifyToken)
	mux.HandleFunc("GET /api/policies", s.handlePoliciesList)
	mux.HandleFunc("POST /api/policies", s.handlePoliciesRegister)
	return mux
}

type healthResponse struct {
	Status             string `json:"status"`
	Version             string `json:"version"`
	SchemaVersion       string `json:"schema_version"`
	PolicyCount         int    `json:"policy_count"`
	RegistryFingerprint string `json:"registry_fingerprint"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	policies := s.Registry.List()
	WriteSuccess(w, healthResponse{
		Status:              "ok",
		Version:             SchemaVersion,
		SchemaVersion:       SchemaVersion,
		PolicyCount:         len(policies),
		RegistryFingerprint: s.Registry.Fingerprint(),
	})
}

type sliceRequest struct {
	AnchorTurnID string      `json:"anchor_turn_id"`
	PolicyRef    *policy.Ref `json:"policy_ref,omitempty"`
}

type sliceResponse struct {
	Slice     sliceexport.SliceExport `json:"slice"`
	PolicyRef policy.Ref              `json:"policy_ref"`
}

func (s *Server) resolvePolicy(ref *policy.Ref) (policy.SlicePolicy, policy.Ref, error) {
	if ref == nil {
		p := policy.Default()
		return p, p.Ref(), nil
	}
	p, err := s.Registry.Get(*ref)
	if err != nil {
		return policy.SlicePolicy{}, policy.Ref{}, err
	}
	return p, *ref, nil
}

func (s *Server) handleSlice(w http.ResponseWriter, r *http.Request) {
	var req sliceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorCode(w, http.StatusBadRequest, "INVALID_TURN_ID", err)
		return
	}

	anchor, err := ids.ParseTurnID(req.AnchorTurnID)
	if err != nil {
		WriteErrorCode(w, http.StatusBadRequest, "INVALID_TURN_ID", err)
		return
	}

	p, ref, err := s.resolvePolicy(req.PolicyRef)
	if err != nil {
		WriteErrorCode(w, http.StatusNotFound, "POLICY_NOT_FOUND", err)
		return
	}

	export, err := s.Slicer.Slice(r.Context(), anchor, p)
	if err != nil {
		writeSliceError(w, err)
		return
	}

	WriteSuccess(w, sliceResponse{Slice: export, PolicyRef: ref})
}

type sliceBatchRequest struct {
	AnchorTurnIDs []string    `json:"anchor_turn_ids"`
	PolicyRef     *policy.Ref `json:"policy_ref,omitempty"`
}

type sliceBatchResponse struct {
	Slices       []sliceexport.SliceExport `json:"slices"`
	PolicyRef    policy.Ref                `json:"policy_ref"`
	SuccessCount int                       `json:"success_count"`
	Errors       []string                  `json:"errors"`
}

func (s *Server) handleSliceBatch(w http.ResponseWriter, r *http.Request) {
	var req sliceBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorCode(w, http.StatusBadRequest, "INVALID_TURN_ID", err)
		return
	}

	p, ref, err := s.resolvePolicy(req.PolicyRef)
	if err != nil {
		WriteErrorCode(w, http.StatusNotFound, "POLICY_NOT_FOUND", err)
		return
	}

	resp := sliceBatchResponse{PolicyRef: ref}
	for _, raw := range req.AnchorTurnIDs {
		anchor, err := ids.ParseTurnID(raw)
		if err != nil {
			resp.Errors = append(resp.Errors, "INVALID_TURN_ID: "+raw)
			continue
		}
		export, err := s.Slicer.Slice(r.Context(), anchor, p)
		if err != nil {
			resp.Errors = append(resp.Errors, err.Error())
			continue
		}
		resp.Slices = append(resp.Slices, export)
		resp.SuccessCount++
	}

	WriteSuccess(w, resp)
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var export sliceexport.SliceExport
	if err := json.NewDecoder(r.Body).Decode(&export); err != nil {
		WriteErrorCode(w, http.StatusBadRequest, "INVALID_TURN_ID", err)
		return
	}

	outcome, err := s.Verifier.Verify(r.Context(), export)
	if err != nil {
		WriteErrorCode(w, http.StatusInternalServerError, "STORE_ERROR", err)
		return
	}

	WriteSuccess(w, verifyResponse{Valid: outcome.Ok(), Reason: outcome.Reason})
}

type policiesListResponse struct {
	Policies            []policy.SlicePolicy `json:"policies"`
	RegistryFingerprint string                `json:"registry_fingerprint"`
}

func (s *Server) handlePoliciesList(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, policiesListResponse{
		Policies:            s.Registry.List(),
		RegistryFingerprint: s.Registry.Fingerprint(),
	})
}

type policyRegisterRequest struct {
	Policy policy.SlicePolicy `json:"policy"`
}

type policyRegisterResponse struct {
	PolicyRef policy.Ref `json:"policy_ref"`
}

func (s *Server) handlePoliciesRegister(w http.ResponseWriter, r *http.Request) {
	var req policyRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorCode(w, http.StatusBadRequest, "INVALID_TURN_ID", err)
		return
	}
	if err := req.Policy.Validate(); err != nil {
		WriteErrorCode(w, http.StatusBadRequest, "INVALID_TURN_ID", err)
		return
	}

	ref, err := s.Registry.Register(req.Policy)
	if err != nil {
		WriteErrorCode(w, http.StatusInternalServerError, "SLICE_FAILED", err)
		return
	}

	WriteSuccess(w, policyRegisterResponse{PolicyRef: ref})
}

func writeSliceError(w http.ResponseWriter, err error) {
	var anchorNotFound *slicer.ErrAnchorNotFound
	var storeErr *slicer.ErrStore
	switch {
	case errors.As(err, &anchorNotFound):
		WriteErrorCode(w, http.StatusNotFound, "ANCHOR_NOT_FOUND", err)
	case errors.As(err, &storeErr):
		WriteErrorCode(w, http.StatusInternalServerError, "STORE_ERROR", err)
	default:
		WriteErrorCode(w, http.StatusInternalServerError, "SLICE_FAILED", err)
	}
}
