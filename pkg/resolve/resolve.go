// Package resolve groups raw observations into clusters believed to describe
// the same real-world development, merges each cluster into one canonical
// record, and scores the result for trust.
//
// Clustering is a streaming, single-pass, greedy algorithm: each observation
// is assigned, in arrival order, to the first cluster it matches, and a later
// observation can never split or re-merge an earlier decision. Callers must
// therefore submit observations in a stable order to get reproducible output.
// An order-independent variant (union-find over pairwise similarity) would
// change output characteristics and is deliberately not implemented.
package resolve

import (
	"regexp"
	"sort"
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

// Policy constants for the matching heuristics. These are tuning knobs, not
// correctness guarantees: short names sharing a long prefix can still merge
// falsely ("Riverside House" vs "Riverside Heights").
const (
	// DefaultMinNameLength is the shortest name worth clustering; anything
	// shorter is dropped before grouping.
	DefaultMinNameLength = 3

	// DefaultMinMatchLength is the shortest normalized name or slug eligible
	// for the containment and prefix rules.
	DefaultMinMatchLength = 5

	// DefaultMaxPrefixDrift is the largest slug length difference the prefix
	// rule tolerates.
	DefaultMaxPrefixDrift = 2
)

// Resolver turns observation batches into canonical developments.
type Resolver struct {
	minNameLength  int
	minMatchLength int
	maxPrefixDrift int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMinNameLength overrides the minimum observation name length.
func WithMinNameLength(n int) Option {
	return func(r *Resolver) { r.minNameLength = n }
}

// WithMinMatchLength overrides the minimum length for fuzzy matching.
func WithMinMatchLength(n int) Option {
	return func(r *Resolver) { r.minMatchLength = n }
}

// WithMaxPrefixDrift overrides the slug prefix length tolerance.
func WithMaxPrefixDrift(n int) Option {
	return func(r *Resolver) { r.maxPrefixDrift = n }
}

// New creates a Resolver with the default matching policy.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		minNameLength:  DefaultMinNameLength,
		minMatchLength: DefaultMinMatchLength,
		maxPrefixDrift: DefaultMaxPrefixDrift,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// cluster is one group of observations believed to describe the same
// development. The key is the slug of the first observation seen.
type cluster struct {
	key          string
	firstName    string
	observations []developments.Observation
}

// Resolve groups the observations, merges each cluster, scores every merged
// development, and returns them sorted by confidence score descending. The
// sort is stable so equal scores keep discovery order. The input slice is
// not modified.
func (r *Resolver) Resolve(observations []developments.Observation) []developments.Development {
	clusters := r.group(observations)

	results := make([]developments.Development, 0, len(clusters))
	for _, c := range clusters {
		dev := mergeCluster(c.key, c.observations)
		dev.ConfidenceScore = Score(&dev)
		dev.Confidence = developments.ConfidenceForScore(dev.ConfidenceScore)
		results = append(results, dev)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ConfidenceScore > results[j].ConfidenceScore
	})
	return results
}

// group runs the streaming clustering pass.
func (r *Resolver) group(observations []developments.Observation) []*cluster {
	var clusters []*cluster
	byKey := make(map[string]*cluster)

	for _, obs := range observations {
		name := strings.TrimSpace(obs.Name)
		if len(name) < r.minNameLength {
			continue
		}
		slug := developments.Slug(name)
		if slug == "" {
			continue
		}

		if c := r.match(clusters, byKey, slug, name); c != nil {
			c.observations = append(c.observations, obs)
			continue
		}

		c := &cluster{key: slug, firstName: name, observations: []developments.Observation{obs}}
		clusters = append(clusters, c)
		byKey[slug] = c
	}

	return clusters
}

var alnumRe = regexp.MustCompile(`[^a-z0-9]`)

// match finds the first existing cluster the candidate belongs to, applying
// the rules in fixed order: exact slug, normalized substring containment,
// slug prefix proximity. Returns nil when the candidate starts a new cluster.
func (r *Resolver) match(clusters []*cluster, byKey map[string]*cluster, slug, name string) *cluster {
	if c, ok := byKey[slug]; ok {
		return c
	}

	normalized := alnumRe.ReplaceAllString(strings.ToLower(name), "")
	for _, c := range clusters {
		existing := alnumRe.ReplaceAllString(strings.ToLower(c.firstName), "")

		if len(normalized) > r.minMatchLength && len(existing) > r.minMatchLength {
			if strings.Contains(existing, normalized) || strings.Contains(normalized, existing) {
				return c
			}
		}

		if len(slug) > r.minMatchLength && len(c.key) > r.minMatchLength {
			if strings.HasPrefix(slug, c.key) || strings.HasPrefix(c.key, slug) {
				if abs(len(slug)-len(c.key)) <= r.maxPrefixDrift {
					return c
				}
			}
		}
	}

	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
