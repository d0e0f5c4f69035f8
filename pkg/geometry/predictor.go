package geometry

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// Traversal prediction based on the hash-based ray path prediction technique
// of Demoullin, Gubran and Aamodt (https://arxiv.org/abs/1910.01304): rays
// that hash to the same quantized origin and direction tend to make the same
// traversal decisions. Unlike the paper, predictions here are purely
// advisory: they pick which child to descend first, and traversal still
// performs every geometric test, so the rendered image is identical with the
// predictor on or off.

// Outcome is a remembered traversal decision at one BVH node
type Outcome uint8

const (
	// OutcomeLeftFirst and OutcomeRightFirst record which child of an
	// internal node was geometrically nearer
	OutcomeLeftFirst Outcome = iota
	OutcomeRightFirst
	// OutcomeLeafHit and OutcomeLeafMiss record whether a leaf's primitives
	// produced a hit
	OutcomeLeafHit
	OutcomeLeafMiss
)

// IsOrder reports whether the outcome is a child-ordering decision
func (o Outcome) IsOrder() bool {
	return o == OutcomeLeftFirst || o == OutcomeRightFirst
}

// Number of bits kept from the exponent and from the mantissa of each ray
// component. The paper found 5-6 bits optimal; we use 6.
const quantBits = 6

const predictorShards = 64

// predictorShard is one independently locked slice of the table. Sharding
// keeps contention low without a global lock; a lost update only costs a
// fallback to the geometric ordering.
type predictorShard struct {
	mu    sync.RWMutex
	table map[uint64]Outcome
}

// PredictorStats counts prediction table activity
type PredictorStats struct {
	Lookups uint64 // Total lookups
	Hits    uint64 // Lookups that found an entry
	Updates uint64 // Outcomes recorded
}

// Predictor is a concurrent-safe cache of traversal outcomes keyed by the
// quantized ray and the BVH node index. Entries are advisory and best-effort:
// a stale or missing entry never affects the rendered image, only the order
// in which traversal visits children.
type Predictor struct {
	shards  [predictorShards]predictorShard
	lookups atomic.Uint64
	hits    atomic.Uint64
	updates atomic.Uint64
}

// NewPredictor creates an empty traversal predictor
func NewPredictor() *Predictor {
	p := &Predictor{}
	for i := range p.shards {
		p.shards[i].table = make(map[uint64]Outcome)
	}
	return p
}

// Lookup returns the remembered outcome for this ray at this node
func (p *Predictor) Lookup(ray core.Ray, nodeIndex int) (Outcome, bool) {
	p.lookups.Add(1)

	key := predictionKey(ray, nodeIndex)
	shard := &p.shards[key&(predictorShards-1)]

	shard.mu.RLock()
	outcome, ok := shard.table[key]
	shard.mu.RUnlock()

	if ok {
		p.hits.Add(1)
	}
	return outcome, ok
}

// Record stores the observed ordering outcome for this ray at this node
func (p *Predictor) Record(ray core.Ray, nodeIndex int, outcome Outcome) {
	p.updates.Add(1)

	key := predictionKey(ray, nodeIndex)
	shard := &p.shards[key&(predictorShards-1)]

	shard.mu.Lock()
	shard.table[key] = outcome
	shard.mu.Unlock()
}

// RecordLeaf stores whether a leaf produced a hit for this ray
func (p *Predictor) RecordLeaf(ray core.Ray, nodeIndex int, hit bool) {
	outcome := OutcomeLeafMiss
	if hit {
		outcome = OutcomeLeafHit
	}
	p.Record(ray, nodeIndex, outcome)
}

// Stats returns a snapshot of the table counters
func (p *Predictor) Stats() PredictorStats {
	return PredictorStats{
		Lookups: p.lookups.Load(),
		Hits:    p.hits.Load(),
		Updates: p.updates.Load(),
	}
}

// Size returns the total number of entries across all shards
func (p *Predictor) Size() int {
	total := 0
	for i := range p.shards {
		p.shards[i].mu.RLock()
		total += len(p.shards[i].table)
		p.shards[i].mu.RUnlock()
	}
	return total
}

// LogStats reports table activity through the given logger
func (p *Predictor) LogStats(logger core.Logger) {
	stats := p.Stats()
	ratio := 0.0
	if stats.Lookups > 0 {
		ratio = float64(stats.Hits) / float64(stats.Lookups)
	}
	logger.Printf("Predictor: %d lookups, %d hits (%.1f%%), %d updates, %d entries\n",
		stats.Lookups, stats.Hits, 100*ratio, stats.Updates, p.Size())
}

// quantizeComponent extracts the sign bit plus the top quantBits of the
// exponent and mantissa of a float64, giving a 13-bit bucket. Nearby values
// land in the same bucket, which is what lets distinct but similar rays share
// predictions.
func quantizeComponent(val float64) uint64 {
	bits := math.Float64bits(val)

	sign := bits >> 63
	// Exponent occupies bits 52..62, mantissa bits 0..51
	exponent := (bits >> (62 - quantBits + 1)) & ((1 << quantBits) - 1)
	mantissa := (bits >> (52 - quantBits)) & ((1 << quantBits) - 1)

	return sign<<(2*quantBits) | exponent<<quantBits | mantissa
}

// predictionKey hashes the quantized ray and node index into a table key.
// Components are xor-folded pairwise as in the paper, then mixed with the
// node index so each node sees its own key space.
func predictionKey(ray core.Ray, nodeIndex int) uint64 {
	h0 := quantizeComponent(ray.Origin.X) ^ quantizeComponent(ray.Direction.Z)
	h1 := quantizeComponent(ray.Origin.Y) ^ quantizeComponent(ray.Direction.Y)
	h2 := quantizeComponent(ray.Origin.Z) ^ quantizeComponent(ray.Direction.X)

	key := h0 | h1<<16 | h2<<32
	key ^= uint64(nodeIndex) * 0x9e3779b97f4a7c15

	// Final avalanche so shard selection uses well-mixed low bits
	key = (key ^ (key >> 30)) * 0xbf58476d1ce4e5b9
	key = (key ^ (key >> 27)) * 0x94d049bb133111eb
	return key ^ (key >> 31)
}
