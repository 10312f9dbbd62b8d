// Package unlock records newly unlocked roadmap items and resolves what the
// unlock notification shows.
package unlock

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// MarkerPrefix starts every unlock marker. The same string identifies the
// item's node in the knowledge graph.
const MarkerPrefix = "title_"

// Marker returns the marker for a roadmap item.
func Marker(itemID int) string {
	return MarkerPrefix + strconv.Itoa(itemID)
}

// ParseMarker extracts the item id from a marker.
func ParseMarker(marker string) (int, bool) {
	rest, ok := strings.CutPrefix(marker, MarkerPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

// MarkerStore persists the marker set. Implementations never store a
// marker twice and never remove one.
type MarkerStore interface {
	Contains(ctx context.Context, marker string) (bool, error)
	Add(ctx context.Context, marker string) error
}

// MarkerLister is implemented by stores that can enumerate their markers.
type MarkerLister interface {
	List(ctx context.Context) ([]string, error)
}

// MemoryMarkers is an in-process MarkerStore.
type MemoryMarkers struct {
	mu      sync.Mutex
	markers []string
}

// NewMemoryMarkers creates a store seeded with markers.
func NewMemoryMarkers(markers ...string) *MemoryMarkers {
	m := &MemoryMarkers{}
	for _, mk := range markers {
		m.Add(context.Background(), mk)
	}
	return m
}

func (m *MemoryMarkers) Contains(_ context.Context, marker string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.markers, marker), nil
}

func (m *MemoryMarkers) Add(_ context.Context, marker string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.markers, marker) {
		m.markers = append(m.markers, marker)
	}
	return nil
}

func (m *MemoryMarkers) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.markers), nil
}

// Set is a loaded snapshot of markers for display lookups.
type Set map[string]struct{}

// LoadSet reads every marker from l. A nil lister yields an empty set.
func LoadSet(ctx context.Context, l MarkerLister) (Set, error) {
	s := Set{}
	if l == nil {
		return s, nil
	}
	markers, err := l.List(ctx)
	if err != nil {
		return s, err
	}
	for _, mk := range markers {
		s[mk] = struct{}{}
	}
	return s, nil
}

// Has reports whether the item's marker is in the set.
func (s Set) Has(itemID int) bool {
	_, ok := s[Marker(itemID)]
	return ok
}

// HasNode reports whether a graph node id is in the set.
func (s Set) HasNode(nodeID string) bool {
	_, ok := s[nodeID]
	return ok
}
