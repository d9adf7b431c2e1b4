// # internal/trends/trends_bench_test.go
package trends

import (
	"path/filepath"
	"testing"
	"time"
)

func BenchmarkStore_SaveSnapshot(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "trends.db"))
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := Snapshot{
			Timestamp:       base.Add(time.Duration(i) * time.Second),
			FileCount:       250 + (i % 11),
			ParsedCount:     245 + (i % 7),
			FailedCount:     i % 5,
			TypeCount:       400 + (i % 13),
			MethodCount:     2100 + (i % 17),
			FieldCount:      900 + (i % 19),
			DocumentedTypes: 180 + (i % 23),
			CommitCount:     1500 + i,
		}
		if err := store.SaveSnapshot("bench", s); err != nil {
			b.Fatalf("save snapshot: %v", err)
		}
	}
}

func BenchmarkStore_LoadSnapshots(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "trends.db"))
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2500; i++ {
		if err := store.SaveSnapshot("bench", Snapshot{
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			FileCount:   90 + i%19,
			ParsedCount: 85 + i%17,
			FailedCount: i % 4,
			TypeCount:   150 + i%29,
		}); err != nil {
			b.Fatalf("seed snapshot %d: %v", i, err)
		}
	}

	since := base.Add(24 * time.Hour)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		snapshots, err := store.LoadSnapshots("bench", since)
		if err != nil {
			b.Fatalf("load snapshots: %v", err)
		}
		if len(snapshots) == 0 {
			b.Fatal("expected snapshots")
		}
	}
}
