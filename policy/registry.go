// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/luxfi/graphkernel/codec"
)

// ErrImmutabilityViolation is returned by Registry.Register when a Ref is
// already bound to different parameters: a PolicyRef resolves to exactly
// one SlicePolicy for the lifetime of the kernel.
type ErrImmutabilityViolation struct {
	Ref Ref
}

func (e *ErrImmutabilityViolation) Error() string {
	return fmt.Sprintf("policy: %s is already bound to different parameters", e.Ref)
}

// ErrNotFound is returned by Registry.Get when ref has no bound policy.
type ErrNotFound struct {
	Ref Ref
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("policy: %s not found", e.Ref)
}

// Registry is the process-wide PolicyRef -> SlicePolicy map. Writes only
// happen through Register, which refuses to rebind an existing ref to
// different parameters. Reads take a shared lock; this is lock contention
// only on registration, never on the (much hotter) slicing path, mirroring
// the teacher's metrics.registry shape (mutex-guarded map with narrow
// read/write surface).
type Registry struct {
	mu       sync.RWMutex
	policies map[Ref]SlicePolicy
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[Ref]SlicePolicy)}
}

// Register binds p's Ref to p. Re-registering the same ref with
// byte-identical parameters is a no-op; re-registering it with different
// parameters returns ErrImmutabilityViolation.
func (r *Registry) Register(p SlicePolicy) (Ref, error) {
	ref := p.Ref()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.policies[ref]
	if ok {
		if !samePolicy(existing, p) {
			return Ref{}, &ErrImmutabilityViolation{Ref: ref}
		}
		return ref, nil
	}
	r.policies[ref] = p
	return ref, nil
}

// Get resolves ref to its bound SlicePolicy.
func (r *Registry) Get(ref Ref) (SlicePolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.policies[ref]
	if !ok {
		return SlicePolicy{}, &ErrNotFound{Ref: ref}
	}
	return p, nil
}

// List returns every registered policy, ordered by ParamsHash for
// deterministic output (used by the /api/policies handler).
func (r *Registry) List() []SlicePolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SlicePolicy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, p)
	}
	sortByParamsHash(out)
	return out
}

// Fingerprint returns a stable xxHash64-derived fingerprint over every
// registered policy's canonical payload, used as the health endpoint's
// registry_fingerprint (spec §6).
func (r *Registry) Fingerprint() string {
	policies := r.List()
	var buf []byte
	for i, p := range policies {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, p.CanonicalPayload()...)
	}
	return codec.Fingerprint16(buf)
}

func samePolicy(a, b SlicePolicy) bool {
	return string(a.CanonicalPayload()) == string(b.CanonicalPayload())
}

func sortByParamsHash(policies []SlicePolicy) {
	sort.Slice(policies, func(i, j int) bool {
		return policies[i].ParamsHash() < policies[j].ParamsHash()
	})
}
