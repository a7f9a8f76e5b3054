package metrics

import (
	"sort"

	"sapflow/internal/classify"
	"sapflow/internal/config"
	"sapflow/pkg/contracts/domain"
)

// StatusFor buckets a vacuum level. Bounds are inclusive at the
// bottom of each bucket: 20.0 is excellent and 15.0 is fair, while
// 14.99 is poor and anything under 12.0 critical.
func StatusFor(vacuum float64) domain.VacuumStatus {
	switch {
	case vacuum >= config.VacuumExcellentMin:
		return domain.VacuumExcellent
	case vacuum >= config.VacuumFairMin:
		return domain.VacuumFair
	case vacuum < config.VacuumCriticalMax:
		return domain.VacuumCritical
	default:
		return domain.VacuumPoor
	}
}

// LatestSnapshots reduces the reading history to one snapshot per
// sensor, keeping the most recent reading. Excluded hardware is
// dropped; birch sensors are kept and marked.
func LatestSnapshots(readings []domain.VacuumReading) []domain.SensorSnapshot {
	latest := make(map[string]domain.VacuumReading)
	for _, r := range readings {
		if classify.Sensor(r.SensorName) == domain.SensorExcluded {
			continue
		}
		prev, ok := latest[r.SensorName]
		if !ok || r.Timestamp.After(prev.Timestamp) {
			latest[r.SensorName] = r
		}
	}

	snapshots := make([]domain.SensorSnapshot, 0, len(latest))
	for _, r := range latest {
		snapshots = append(snapshots, domain.SensorSnapshot{
			SensorName: r.SensorName,
			Class:      classify.Sensor(r.SensorName),
			Conductor:  r.Conductor,
			Mainline:   r.Mainline,
			Site:       r.Site,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			Vacuum:     r.Vacuum,
			Status:     StatusFor(r.Vacuum),
			ReadAt:     r.Timestamp,
			Notes:      r.Notes,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].SensorName < snapshots[j].SensorName
	})
	return snapshots
}

// StatusCounts tallies snapshots per vacuum bucket, worst first
func StatusCounts(snapshots []domain.SensorSnapshot) []domain.StatusCount {
	counts := map[domain.VacuumStatus]int{}
	for _, s := range snapshots {
		counts[s.Status]++
	}

	order := []domain.VacuumStatus{
		domain.VacuumCritical, domain.VacuumPoor,
		domain.VacuumFair, domain.VacuumExcellent,
	}
	out := make([]domain.StatusCount, 0, len(order))
	for _, status := range order {
		out = append(out, domain.StatusCount{Status: status, Count: counts[status]})
	}
	return out
}

// AvgVacuum averages snapshot vacuum levels, zero for no sensors
func AvgVacuum(snapshots []domain.SensorSnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range snapshots {
		sum += s.Vacuum
	}
	return sum / float64(len(snapshots))
}

// ProblemSensors returns the worst snapshots by vacuum, up to limit
func ProblemSensors(snapshots []domain.SensorSnapshot, limit int) []domain.SensorSnapshot {
	sorted := make([]domain.SensorSnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Vacuum != sorted[j].Vacuum {
			return sorted[i].Vacuum < sorted[j].Vacuum
		}
		return sorted[i].SensorName < sorted[j].SensorName
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
