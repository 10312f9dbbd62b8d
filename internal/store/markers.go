package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// MarkersKey is the kv entry holding the unlock marker set.
const MarkersKey = "new_unlocks"

// DecodeMarkers parses a stored marker set. An empty value is an empty set.
func DecodeMarkers(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var markers []string
	if err := json.Unmarshal([]byte(raw), &markers); err != nil {
		return nil, fmt.Errorf("decode %s: %w", MarkersKey, err)
	}
	return markers, nil
}

// EncodeMarkers serializes a marker set as a JSON array.
func EncodeMarkers(markers []string) (string, error) {
	if markers == nil {
		markers = []string{}
	}
	data, err := json.Marshal(markers)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", MarkersKey, err)
	}
	return string(data), nil
}

// MarkerRepo is the persisted set of unlock markers. Markers are only ever
// added; a marker is stored at most once.
type MarkerRepo struct {
	kv *Store
}

// List returns every stored marker in insertion order.
func (r *MarkerRepo) List(ctx context.Context) ([]string, error) {
	raw, _, err := r.kv.Get(ctx, MarkersKey)
	if err != nil {
		return nil, err
	}
	return DecodeMarkers(raw)
}

// Contains reports whether marker is stored.
func (r *MarkerRepo) Contains(ctx context.Context, marker string) (bool, error) {
	markers, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(markers, marker), nil
}

// Add stores marker unless it is already present.
func (r *MarkerRepo) Add(ctx context.Context, marker string) error {
	r.kv.kvMu.Lock()
	defer r.kv.kvMu.Unlock()

	markers, err := r.List(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(markers, marker) {
		return nil
	}

	raw, err := EncodeMarkers(append(markers, marker))
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, MarkersKey, raw)
}
