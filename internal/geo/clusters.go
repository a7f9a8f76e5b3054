package geo

import (
	"sort"

	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// ProblemClusters runs DBSCAN over the underperforming sensors and
// summarizes the resulting groups, worst average vacuum first. Only
// sensors reading below the fair threshold participate: a tight patch
// of healthy sensors is not a problem area. Sensors without
// coordinates are skipped; noise points are not summarized.
func ProblemClusters(snapshots []domain.SensorSnapshot, epsMeters float64, minPoints int) []domain.SensorCluster {
	var points []domain.ClusteredSensor
	for _, s := range snapshots {
		if s.Vacuum >= config.VacuumFairMin {
			continue
		}
		if s.Latitude == 0 && s.Longitude == 0 {
			continue
		}
		points = append(points, domain.ClusteredSensor{
			SensorName: s.SensorName,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			Vacuum:     s.Vacuum,
		})
	}

	labeled := DBSCAN(points, epsMeters, minPoints)
	return Summarize(labeled)
}

// Summarize rolls labeled sensors up into per-cluster summaries,
// sorted so the cluster with the worst average vacuum comes first.
func Summarize(labeled []domain.ClusteredSensor) []domain.SensorCluster {
	byLabel := make(map[int]*domain.SensorCluster)
	sums := make(map[int]struct{ vac, lat, lon float64 })

	for _, p := range labeled {
		if p.Cluster == domain.NoiseCluster {
			continue
		}
		c, ok := byLabel[p.Cluster]
		if !ok {
			c = &domain.SensorCluster{Label: p.Cluster, WorstVacuum: p.Vacuum}
			byLabel[p.Cluster] = c
		}
		c.Sensors = append(c.Sensors, p.SensorName)
		c.Size++
		if p.Vacuum < c.WorstVacuum {
			c.WorstVacuum = p.Vacuum
		}
		s := sums[p.Cluster]
		s.vac += p.Vacuum
		s.lat += p.Latitude
		s.lon += p.Longitude
		sums[p.Cluster] = s
	}

	out := make([]domain.SensorCluster, 0, len(byLabel))
	for label, c := range byLabel {
		n := float64(c.Size)
		s := sums[label]
		c.AvgVacuum = s.vac / n
		c.CenterLat = s.lat / n
		c.CenterLon = s.lon / n
		sort.Strings(c.Sensors)
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgVacuum != out[j].AvgVacuum {
			return out[i].AvgVacuum < out[j].AvgVacuum
		}
		return out[i].Label < out[j].Label
	})
	return out
}
