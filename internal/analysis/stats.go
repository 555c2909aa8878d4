package analysis

import (
	"sort"

	"dumpwatch/internal/models"
)

// FrequencyTable counts occurrences per distinct endpoint. Iteration
// follows the order in which endpoints were first seen.
type FrequencyTable struct {
	order  []string
	counts map[string]int
	total  int
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{
		counts: make(map[string]int),
	}
}

// Add counts one occurrence of endpoint.
func (f *FrequencyTable) Add(endpoint string) {
	if _, seen := f.counts[endpoint]; !seen {
		f.order = append(f.order, endpoint)
	}
	f.counts[endpoint]++
	f.total++
}

// Count returns the occurrences of endpoint.
func (f *FrequencyTable) Count(endpoint string) int {
	return f.counts[endpoint]
}

// Len returns the number of distinct endpoints.
func (f *FrequencyTable) Len() int {
	return len(f.order)
}

// Total returns the sum of all counts.
func (f *FrequencyTable) Total() int {
	return f.total
}

// Entries returns every endpoint with its count, in first-seen order.
func (f *FrequencyTable) Entries() []models.EndpointCount {
	entries := make([]models.EndpointCount, len(f.order))
	for i, ep := range f.order {
		entries[i] = models.EndpointCount{Endpoint: ep, Count: f.counts[ep]}
	}
	return entries
}

// Top returns the n most frequent endpoints, ties kept in first-seen
// order. A non-positive n returns all of them.
func (f *FrequencyTable) Top(n int) []models.EndpointCount {
	entries := f.Entries()

	// Sort descending by count
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && len(entries) > n {
		return entries[:n]
	}
	return entries
}

// CountMatching sums the counts of every endpoint accepted by match.
func (f *FrequencyTable) CountMatching(match func(endpoint string) bool) int {
	sum := 0
	for _, ep := range f.order {
		if match(ep) {
			sum += f.counts[ep]
		}
	}
	return sum
}

// Aggregate builds the source and destination frequency tables from
// the endpoint lists accumulated by the record pipeline.
func Aggregate(sources, destinations []string) (src, dst *FrequencyTable) {
	src = NewFrequencyTable()
	for _, ep := range sources {
		src.Add(ep)
	}

	dst = NewFrequencyTable()
	for _, ep := range destinations {
		dst.Add(ep)
	}
	return src, dst
}
