// # internal/trends/trends.go
package trends

import (
	"fmt"
	"math"
	"time"
)

// BuildTrendReport turns an ordered snapshot series into per-run points
// with deltas against the previous run and moving averages over the
// given window. Snapshots must be sorted oldest first, the order
// LoadSnapshots returns.
func BuildTrendReport(projectKey string, snapshots []Snapshot, window time.Duration) (TrendReport, error) {
	if len(snapshots) == 0 {
		return TrendReport{}, fmt.Errorf("no snapshots available")
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{
			Timestamp:       current.Timestamp,
			CommitHash:      current.CommitHash,
			FileCount:       current.FileCount,
			ParsedCount:     current.ParsedCount,
			FailedCount:     current.FailedCount,
			TypeCount:       current.TypeCount,
			MethodCount:     current.MethodCount,
			FieldCount:      current.FieldCount,
			DocumentedTypes: current.DocumentedTypes,
			CommitCount:     current.CommitCount,
			DocCoverage:     round2(current.DocCoverage()),
		}

		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaFiles = current.FileCount - prev.FileCount
			point.DeltaTypes = current.TypeCount - prev.TypeCount
			point.DeltaMethods = current.MethodCount - prev.MethodCount
			point.DeltaFields = current.FieldCount - prev.FieldCount
			point.DeltaDocumented = current.DocumentedTypes - prev.DocumentedTypes
			point.DeltaCommits = current.CommitCount - prev.CommitCount
			point.DeltaCoverage = round2(current.DocCoverage() - prev.DocCoverage())
			if prev.TypeCount > 0 {
				point.TypeGrowthPct = round2((float64(point.DeltaTypes) / float64(prev.TypeCount)) * 100)
			}
		}

		avgFailures, avgCoverage := movingAverages(snapshots, i, window)
		point.AvgFailures = round2(avgFailures)
		point.AvgCoverage = round2(avgCoverage)
		point.WindowHours = round2(window.Hours())
		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		ProjectKey:    projectKey,
		Since:         snapshots[0].Timestamp,
		Until:         snapshots[len(snapshots)-1].Timestamp,
		Window:        window.String(),
		RunCount:      len(points),
		Points:        points,
	}, nil
}

func movingAverages(snapshots []Snapshot, index int, window time.Duration) (float64, float64) {
	if window <= 0 {
		return float64(snapshots[index].FailedCount), snapshots[index].DocCoverage()
	}

	cutoff := snapshots[index].Timestamp.Add(-window)
	var failuresTotal int
	var coverageTotal float64
	count := 0
	for i := index; i >= 0; i-- {
		if snapshots[i].Timestamp.Before(cutoff) {
			break
		}
		failuresTotal += snapshots[i].FailedCount
		coverageTotal += snapshots[i].DocCoverage()
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(failuresTotal) / float64(count), coverageTotal / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
