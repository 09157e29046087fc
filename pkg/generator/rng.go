// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package generator

import (
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"
)

// RNG is the single random handle of a run. Every generation function takes
// it explicitly; nothing in the module draws from a process-wide source.
type RNG struct {
	*rand.Rand
	src *rand.ChaCha8
}

// NewRNG returns a handle seeded from seed. Equal seeds produce equal draw sequences.
func NewRNG(seed uint64) *RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &RNG{Rand: rand.New(src), src: src}
}

// UUID draws a version 4 identifier from the handle.
func (r *RNG) UUID() string {
	return uuid.Must(uuid.NewRandomFromReader(r.src)).String()
}

// Poisson draws a count with mean lambda. Non-positive means yield 0.
func (r *RNG) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: r.Rand}.Rand())
}

// Normal draws from N(mu, sigma).
func (r *RNG) Normal(mu, sigma float64) float64 {
	if sigma <= 0 {
		return mu
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.Rand}.Rand()
}

// Exponential draws from an exponential distribution with the given scale (mean).
func (r *RNG) Exponential(scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return distuv.Exponential{Rate: 1 / scale, Src: r.Rand}.Rand()
}

// Uniform draws from [lo, hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return distuv.Uniform{Min: lo, Max: hi, Src: r.Rand}.Rand()
}

// Bernoulli reports success with probability p.
func (r *RNG) Bernoulli(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return distuv.Bernoulli{P: p, Src: r.Rand}.Rand() == 1
}

// IntBetween draws an integer in [lo, hi].
func (r *RNG) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Choice picks one item uniformly. It panics on an empty slice, which a
// validated profile never contains.
func (r *RNG) Choice(items []string) string {
	return items[r.IntN(len(items))]
}

// WeightedIndex picks an index with probability proportional to its weight.
func (r *RNG) WeightedIndex(weights []float64) int {
	return int(distuv.NewCategorical(weights, r.Rand).Rand())
}

// TimeBetween draws an instant uniformly from [start, end).
func (r *RNG) TimeBetween(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(r.Int64N(int64(span))))
}

// SampleIndices picks k distinct indices out of n and returns them in
// ascending order so sampled tables keep their original row order.
func (r *RNG) SampleIndices(n, k int) []int {
	if k <= 0 || n <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	idx := r.Perm(n)[:k]
	sort.Ints(idx)
	return idx
}
