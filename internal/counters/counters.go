// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package counters records reference-marker matching outcomes. The matcher
// reports through the Sink interface; Memory keeps in-process totals and
// Prometheus exports them as a labelled counter.
package counters

import (
	"sort"
	"sync/atomic"
)

// Counter names one matching outcome.
type Counter int

const (
	MatchedRefMarkers Counter = iota
	UnmatchedRefMarkers
	NoCandidates
	ManyCandidates
	StyleAuthors
	StyleNumbered
	StyleOther
	MatchedRefMarkersAfterPostFiltering
	ManyCandidatesAfterPostFiltering
	NoCandidatesAfterPostFiltering

	numCounters
)

var counterNames = [numCounters]string{
	MatchedRefMarkers:                   "MATCHED_REF_MARKERS",
	UnmatchedRefMarkers:                 "UNMATCHED_REF_MARKERS",
	NoCandidates:                        "NO_CANDIDATES",
	ManyCandidates:                      "MANY_CANDIDATES",
	StyleAuthors:                        "STYLE_AUTHORS",
	StyleNumbered:                       "STYLE_NUMBERED",
	StyleOther:                          "STYLE_OTHER",
	MatchedRefMarkersAfterPostFiltering: "MATCHED_REF_MARKERS_AFTER_POST_FILTERING",
	ManyCandidatesAfterPostFiltering:    "MANY_CANDIDATES_AFTER_POST_FILTERING",
	NoCandidatesAfterPostFiltering:      "NO_CANDIDATES_AFTER_POST_FILTERING",
}

// String returns the counter name, e.g. "NO_CANDIDATES".
func (c Counter) String() string {
	if c < 0 || c >= numCounters {
		return "UNKNOWN"
	}
	return counterNames[c]
}

// All returns every counter in declaration order.
func All() []Counter {
	all := make([]Counter, numCounters)
	for i := range all {
		all[i] = Counter(i)
	}
	return all
}

// Sink receives counter increments. Implementations must be safe for
// concurrent use.
type Sink interface {
	Increment(c Counter)
}

// Memory is a Sink holding totals in process memory. The zero value is
// ready to use.
type Memory struct {
	counts [numCounters]atomic.Int64
}

// Increment adds one to c. Unknown counters are ignored.
func (m *Memory) Increment(c Counter) {
	if c < 0 || c >= numCounters {
		return
	}
	m.counts[c].Add(1)
}

// Get returns the current value of c.
func (m *Memory) Get(c Counter) int64 {
	if c < 0 || c >= numCounters {
		return 0
	}
	return m.counts[c].Load()
}

// Snapshot returns the non-zero counters keyed by name.
func (m *Memory) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	for _, c := range All() {
		if v := m.Get(c); v != 0 {
			out[c.String()] = v
		}
	}
	return out
}

// Names returns the snapshot keys sorted alphabetically.
func Names(snapshot map[string]int64) []string {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tee is a Sink that forwards every increment to each of its sinks.
type Tee []Sink

// Increment forwards c to every sink.
func (t Tee) Increment(c Counter) {
	for _, s := range t {
		s.Increment(c)
	}
}

// Discard is a Sink that drops every increment.
var Discard Sink = discard{}

type discard struct{}

func (discard) Increment(Counter) {}
