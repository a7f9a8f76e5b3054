package geo

import (
	"sapflow/pkg/contracts/domain"
)

// DBSCAN labels sensors by spatial density. Points with at least
// minPoints neighbors (themselves included) within epsMeters seed a
// cluster; reachable border points join it; everything else is noise
// and keeps the noise label.
//
// Labels are assigned in discovery order starting at 0. The input
// order is preserved in the output.
func DBSCAN(sensors []domain.ClusteredSensor, epsMeters float64, minPoints int) []domain.ClusteredSensor {
	out := make([]domain.ClusteredSensor, len(sensors))
	copy(out, sensors)
	for i := range out {
		out[i].Cluster = domain.NoiseCluster
	}

	visited := make([]bool, len(out))
	next := 0

	for i := range out {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(out, i, epsMeters)
		if len(neighbors) < minPoints {
			continue
		}

		out[i].Cluster = next
		expandCluster(out, visited, neighbors, next, epsMeters, minPoints)
		next++
	}

	return out
}

// expandCluster grows a cluster outward from a core point's neighbors
func expandCluster(sensors []domain.ClusteredSensor, visited []bool, seeds []int, label int, epsMeters float64, minPoints int) {
	for k := 0; k < len(seeds); k++ {
		j := seeds[k]

		if !visited[j] {
			visited[j] = true
			neighbors := regionQuery(sensors, j, epsMeters)
			if len(neighbors) >= minPoints {
				seeds = append(seeds, neighbors...)
			}
		}

		// Noise reachable from a core point becomes a border point
		if sensors[j].Cluster == domain.NoiseCluster {
			sensors[j].Cluster = label
		}
	}
}

// regionQuery returns the indexes within epsMeters of point i,
// including i itself.
func regionQuery(sensors []domain.ClusteredSensor, i int, epsMeters float64) []int {
	var neighbors []int
	for j := range sensors {
		d := HaversineMeters(
			sensors[i].Latitude, sensors[i].Longitude,
			sensors[j].Latitude, sensors[j].Longitude,
		)
		if d <= epsMeters {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}
