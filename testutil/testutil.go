package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/lloyd/dataset"
)

// ThreeBlobs are well-separated 2-D centers.
var ThreeBlobs = []dataset.Point{{-6, 6}, {0, 0}, {6, -6}}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformPoints generates num points with coordinates in [minVal, maxVal).
func (r *RNG) UniformPoints(num, dim int, minVal, maxVal float64) dataset.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	ds := make(dataset.Dataset, num)
	for i := range ds {
		p := make(dataset.Point, dim)
		for j := range p {
			p[j] = minVal + r.rand.Float64()*span
		}
		ds[i] = p
	}
	return ds
}

// Blobs generates num points per center with Gaussian noise of the given
// standard deviation. It returns the points grouped by center and the index
// of the center each point was drawn from.
func (r *RNG) Blobs(centers []dataset.Point, num int, spread float64) (dataset.Dataset, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds := make(dataset.Dataset, 0, len(centers)*num)
	labels := make([]int, 0, len(centers)*num)
	for c, center := range centers {
		for range num {
			p := make(dataset.Point, len(center))
			for j, v := range center {
				p[j] = v + r.rand.NormFloat64()*spread
			}
			ds = append(ds, p)
			labels = append(labels, c)
		}
	}
	return ds, labels
}

// weylSteps are the fractional parts of sqrt(p) for the first primes.
var weylSteps = func() []float64 {
	primes := []float64{2, 3, 5, 7, 11, 13, 17, 19}
	steps := make([]float64, len(primes))
	for i, p := range primes {
		s := math.Sqrt(p)
		steps[i] = s - math.Floor(s)
	}
	return steps
}()

// WeylBlobs generates num points per center without any RNG state: point n
// (counting across all centers) is offset by spread*(frac((n+1)*a_j) - 0.5)
// in coordinate j, where a_j = frac(sqrt(p_j)). The data is therefore
// identical on every platform and run.
func WeylBlobs(centers []dataset.Point, num int, spread float64) (dataset.Dataset, []int) {
	ds := make(dataset.Dataset, 0, len(centers)*num)
	labels := make([]int, 0, len(centers)*num)
	for c, center := range centers {
		for range num {
			n := float64(len(ds) + 1)
			p := make(dataset.Point, len(center))
			for j, v := range center {
				x := n * weylSteps[j%len(weylSteps)]
				p[j] = v + spread*(x-math.Floor(x)-0.5)
			}
			ds = append(ds, p)
			labels = append(labels, c)
		}
	}
	return ds, labels
}

// SamePartition reports whether a and b group indices identically, up to a
// renaming of the cluster labels.
func SamePartition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	ab := make(map[int]int)
	ba := make(map[int]int)
	for i := range a {
		if x, ok := ab[a[i]]; ok && x != b[i] {
			return false
		}
		if y, ok := ba[b[i]]; ok && y != a[i] {
			return false
		}
		ab[a[i]] = b[i]
		ba[b[i]] = a[i]
	}
	return true
}
