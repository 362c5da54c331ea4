// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/sliceexport"
)

// Result is the closed set of verification outcomes (spec §4.6).
type Result uint8

const (
	Valid Result = iota
	InvalidToken
	Malformed
	BackendError
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case InvalidToken:
		return "invalid_token"
	case Malformed:
		return "malformed"
	case BackendError:
		return "backend_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of a verification attempt plus an optional reason,
// never a silent success: every code path returns an explicit Result.
type Outcome struct {
	Result Result
	Reason string
}

// Ok reports whether the outcome is a successful verification.
func (o Outcome) Ok() bool { return o.Result == Valid }

// Verifier is the closed sum type of verification modes from spec §4.6.
type Verifier interface {
	Verify(ctx context.Context, export sliceexport.SliceExport) (Outcome, error)
}

// LocalSecret verifies by recomputing the HMAC over canonical bytes
// reconstructed from the SliceExport.
type LocalSecret struct {
	Secret []byte
}

func (v LocalSecret) Verify(_ context.Context, export sliceexport.SliceExport) (Outcome, error) {
	return verifyLocal(v.Secret, export), nil
}

// cacheKey mirrors spec §4.6: xxhash64 of
// (slice_id, policy_id, params_hash, graph_snapshot_hash, schema_version, admissibility_token).
func cacheKey(export sliceexport.SliceExport) uint64 {
	w := codec.NewWriter()
	w.Raw("(")
	w.Str(export.SliceID)
	w.Raw(",")
	w.Str(export.PolicyID)
	w.Raw(",")
	w.Str(export.PolicyParamsHash)
	w.Raw(",")
	w.Str(export.GraphSnapshotHash)
	w.Raw(",")
	w.Str(export.SchemaVersion)
	w.Raw(",")
	w.Str(export.AdmissibilityToken)
	w.Raw(")")
	return xxhashSum(w.Bytes())
}

// Cached wraps LocalSecret with an LRU of verification outcomes, keyed by
// cacheKey. Cache invalidation only happens on secret rotation, which is
// the caller's responsibility (a new Cached is constructed after restart,
// per the HMAC secret's read-only-at-startup lifecycle).
type Cached struct {
	secret []byte
	cache  *lru.Cache[uint64, bool]
}

// NewCached returns a Cached verifier with the given LRU capacity.
func NewCached(secret []byte, capacity int) (*Cached, error) {
	if capacity <= 0 {
		capacity = 4096
	}
	cache, err := lru.New[uint64, bool](capacity)
	if err != nil {
		return nil, fmt.Errorf("token: new verifier cache: %w", err)
	}
	return &Cached{secret: secret, cache: cache}, nil
}

func (c *Cached) Verify(_ context.Context, export sliceexport.SliceExport) (Outcome, error) {
	key := cacheKey(export)
	if ok, hit := c.cache.Get(key); hit {
		if ok {
			return Outcome{Result: Valid}, nil
		}
		return Outcome{Result: InvalidToken}, nil
	}

	outcome := verifyLocal(c.secret, export)
	// Cache only the boolean outcomes the cache key space supports
	// (valid/invalid); malformed exports never reach a stable cache key
	// worth remembering since required fields are what's missing.
	if outcome.Result == Valid || outcome.Result == InvalidToken {
		c.cache.Add(key, outcome.Result == Valid)
	}
	return outcome, nil
}

// Len reports the number of cached outcomes, exposed for tests and metrics.
func (c *Cached) Len() int { return c.cache.Len() }

// Remote verifies against an external verifier service reachable at URL,
// POSTing the SliceExport fields and reading back {valid, reason} (spec §6
// /api/verify_token contract).
type Remote struct {
	URL    string
	Client *http.Client
}

type remoteResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (v Remote) Verify(ctx context.Context, export sliceexport.SliceExport) (Outcome, error) {
	client := v.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	body, err := json.Marshal(export)
	if err != nil {
		return Outcome{Result: BackendError}, fmt.Errorf("token: encode remote verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL+"/verify", jsonReader(body))
	if err != nil {
		return Outcome{Result: BackendError}, fmt.Errorf("token: build remote verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Outcome{Result: BackendError}, fmt.Errorf("token: remote verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{Result: BackendError, Reason: fmt.Sprintf("remote verifier status %d", resp.StatusCode)}, nil
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Outcome{Result: BackendError}, fmt.Errorf("token: decode remote verify response: %w", err)
	}
	if out.Valid {
		return Outcome{Result: Valid}, nil
	}
	return Outcome{Result: InvalidToken, Reason: out.Reason}, nil
}
