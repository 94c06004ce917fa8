package colour

import "sort"

// cluster pairs a centroid with its pixel population.
type cluster struct {
	centroid   point3
	population int
}

// rankClusters counts, for each cluster, the samples of the full
// population assigned to it, and orders clusters descending by that
// count. Ties keep the original cluster index order (stable sort).
func rankClusters(centroids []point3, assignments []int) []cluster {
	populations := make([]int, len(centroids))
	for _, a := range assignments {
		populations[a]++
	}

	ranked := make([]cluster, len(centroids))
	for i, c := range centroids {
		ranked[i] = cluster{centroid: c, population: populations[i]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].population > ranked[j].population
	})

	return ranked
}
