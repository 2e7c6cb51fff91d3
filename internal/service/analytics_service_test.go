package service

import (
    "testing"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/repository"
)

func TestBucketByHour_Empty(t *testing.T) {
    buckets := bucketByHour(nil, time.UTC)
    if len(buckets) != 24 {
        t.Fatalf("len(buckets) = %d, want 24", len(buckets))
    }
    for i, b := range buckets {
        if b.Hour != i {
            t.Errorf("buckets[%d].Hour = %d, want %d", i, b.Hour, i)
        }
        if b.Covers != 0 {
            t.Errorf("buckets[%d].Covers = %d, want 0", i, b.Covers)
        }
    }
}

func TestBucketByHour_SumsPartySizesPerHour(t *testing.T) {
    day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    starts := []repository.SeatingStart{
        {StartedAt: day.Add(19 * time.Hour), PartySize: 2},
        {StartedAt: day.Add(19*time.Hour + 30*time.Minute), PartySize: 4},
        {StartedAt: day.Add(12 * time.Hour), PartySize: 1},
    }
    buckets := bucketByHour(starts, time.UTC)
    if buckets[19].Covers != 6 {
        t.Errorf("buckets[19].Covers = %d, want 6", buckets[19].Covers)
    }
    if buckets[12].Covers != 1 {
        t.Errorf("buckets[12].Covers = %d, want 1", buckets[12].Covers)
    }
    var total uint64
    for _, b := range buckets {
        total += b.Covers
    }
    if total != 7 {
        t.Errorf("total covers = %d, want 7", total)
    }
}

func TestBucketByHour_UsesRestaurantTimezone(t *testing.T) {
    // 23:30 UTC is 02:30 the next day at UTC+3
    loc := time.FixedZone("RST", 3*3600)
    starts := []repository.SeatingStart{
        {StartedAt: time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), PartySize: 3},
    }
    buckets := bucketByHour(starts, loc)
    if buckets[2].Covers != 3 {
        t.Errorf("buckets[2].Covers = %d, want 3", buckets[2].Covers)
    }
    if buckets[23].Covers != 0 {
        t.Errorf("buckets[23].Covers = %d, want 0", buckets[23].Covers)
    }
}

func TestPeakHours(t *testing.T) {
    mk := func(covers map[int]uint64) []HourBucket {
        buckets := make([]HourBucket, 24)
        for i := range buckets {
            buckets[i].Hour = i
            buckets[i].Covers = covers[i]
        }
        return buckets
    }
    tests := []struct {
        name   string
        covers map[int]uint64
        want   []int
    }{
        {"empty", nil, []int{}},
        {"single", map[int]uint64{19: 5}, []int{19}},
        {"top three of four", map[int]uint64{12: 3, 18: 8, 19: 10, 20: 6}, []int{19, 18, 20}},
        // equal covers rank by earlier hour
        {"tie broken by earlier hour", map[int]uint64{13: 4, 11: 4, 19: 9}, []int{19, 11, 13}},
        {"zero buckets never peak", map[int]uint64{7: 2}, []int{7}},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got := peakHours(mk(tt.covers), peakHourCount)
            if len(got) != len(tt.want) {
                t.Fatalf("peakHours() = %v, want %v", got, tt.want)
            }
            for i := range got {
                if got[i] != tt.want[i] {
                    t.Fatalf("peakHours() = %v, want %v", got, tt.want)
                }
            }
        })
    }
}
