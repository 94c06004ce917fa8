package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
)

// KMeansExtractor implements palette extraction using seeded k-means
// clustering over the full pixel population of an image.
type KMeansExtractor struct {
	seed          int64
	restarts      int
	maxIterations int
}

// NewKMeansExtractor creates a KMeansExtractor with the given options.
func NewKMeansExtractor(opts ExtractorOptions) *KMeansExtractor {
	e := &KMeansExtractor{
		seed:          DefaultSeed,
		restarts:      DefaultRestarts,
		maxIterations: DefaultMaxIterations,
	}
	if opts.Seed != nil {
		e.seed = *opts.Seed
	}
	if opts.Restarts > 0 {
		e.restarts = opts.Restarts
	}
	if opts.MaxIterations > 0 {
		e.maxIterations = opts.MaxIterations
	}
	return e
}

// Extract extracts a ranked colour palette from an image.
// The requested count is clamped to [MinColours, MaxColours] and to the
// number of distinct colours, with the lower bound applied last so a
// low-diversity image still yields MinColours entries.
//
// Identical input and options always produce identical output: the
// clustering is seeded, restart selection is by strictly lower inertia,
// and rank ties are broken by original cluster index.
func (e *KMeansExtractor) Extract(img image.Image, requested int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	samples := samplePixels(img)
	if len(samples) == 0 {
		return nil, fmt.Errorf("image %dx%d: %w", img.Bounds().Dx(), img.Bounds().Dy(), ErrEmptyImage)
	}

	unique := uniqueSamples(samples)
	k := clusterCount(requested, len(unique))

	centroids, assignments := e.cluster(samples, k)
	ranked := rankClusters(centroids, assignments)

	entries := make([]Entry, len(ranked))
	for i, c := range ranked {
		entries[i] = entryFromCentroid(c.centroid, c.population)
	}

	return NewPalette(entries), nil
}

// clusterCount computes the actual cluster count: first cap by the
// smaller of the request, the distinct-colour count, and the hard
// ceiling, then floor at the minimum.
func clusterCount(requested, distinct int) int {
	k := min(requested, distinct, MaxColours)
	return max(k, MinColours)
}

// point3 is a point in 3-D RGB space with float64 channels.
type point3 struct {
	R, G, B float64
}

// distSq returns the squared Euclidean distance between two points.
func (p point3) distSq(other point3) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// cluster runs k-means over the full sample population. It performs
// e.restarts independent k-means++ initialisations from a single seeded
// RNG stream and keeps the run with the lowest inertia.
// Returns the winning centroids and, for every sample, its cluster index.
func (e *KMeansExtractor) cluster(samples []Sample, k int) ([]point3, []int) {
	points := make([]point3, len(samples))
	for i, s := range samples {
		points[i] = point3{R: float64(s.R), G: float64(s.G), B: float64(s.B)}
	}

	rng := rand.New(rand.NewSource(e.seed))

	var bestCentroids []point3
	var bestAssignments []int
	bestInertia := math.Inf(1)

	for restart := 0; restart < e.restarts; restart++ {
		centroids, assignments := e.lloyd(points, k, rng)
		inertia := computeInertia(points, centroids, assignments)
		if inertia < bestInertia {
			bestInertia = inertia
			bestCentroids = centroids
			bestAssignments = assignments
		}
	}

	return bestCentroids, bestAssignments
}

// lloyd runs a single k-means fit: k-means++ seeding followed by
// assignment/update iterations until assignments stop changing or the
// iteration cap is reached.
func (e *KMeansExtractor) lloyd(points []point3, k int, rng *rand.Rand) ([]point3, []int) {
	centroids := initCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		if iter > 0 && changed == 0 {
			break
		}

		centroids = recalculateCentroids(points, assignments, k, rng)
	}

	return centroids, assignments
}

// initCentroids seeds k centroids with the k-means++ strategy: the first
// is a random sample, each subsequent one is drawn with probability
// proportional to its squared distance from the nearest chosen centroid.
func initCentroids(points []point3, k int, rng *rand.Rand) []point3 {
	centroids := make([]point3, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := p.distSq(c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist
			total += minDist
		}

		if total == 0 {
			// Fewer distinct points than clusters. Duplicate the last
			// centroid with a tiny offset; coincident clusters are
			// accepted, not an error.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		next := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				next = i
				break
			}
		}
		centroids = append(centroids, points[next])
	}

	return centroids
}

// nearestCentroid finds the index of the nearest centroid to a point.
// Ties go to the lowest index.
func nearestCentroid(p point3, centroids []point3) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distSq(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its assigned
// points. Empty clusters are reseeded from the restart's RNG stream.
func recalculateCentroids(points []point3, assignments []int, k int, rng *rand.Rand) []point3 {
	sums := make([]point3, k)
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3, k)
	for i := range k {
		if counts[i] > 0 {
			centroids[i] = point3{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}

	return centroids
}

// computeInertia returns the sum of squared distances from every point to
// its assigned centroid. Lower is better.
func computeInertia(points []point3, centroids []point3, assignments []int) float64 {
	inertia := 0.0
	for i, p := range points {
		inertia += p.distSq(centroids[assignments[i]])
	}
	return inertia
}
