package service

import (
    "context"
    "sort"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/repository"
)

// trailingDays is the window the duration and histogram panels cover.
const trailingDays = 7

// peakHourCount is how many peak hours the dashboard highlights.
const peakHourCount = 3

// AnalyticsService computes the dashboard aggregates from historical
// seating and reservation rows. All operations are read-only and
// tolerate an empty dataset: empty windows produce zeros, never errors.
type AnalyticsService struct {
    analytics    *repository.AnalyticsRepo
    reservations *repository.ReservationRepo
    loc          *time.Location
    now          func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService. Both repositories
// must be non-nil.
func NewAnalyticsService(analytics *repository.AnalyticsRepo, reservations *repository.ReservationRepo, loc *time.Location) *AnalyticsService {
    if analytics == nil || reservations == nil {
        panic("nil repository passed to NewAnalyticsService")
    }
    if loc == nil {
        loc = time.UTC
    }
    return &AnalyticsService{
        analytics:    analytics,
        reservations: reservations,
        loc:          loc,
        now:          func() time.Time { return time.Now().UTC() },
    }
}

// DailyCovers holds the guest and seating totals for one calendar day.
type DailyCovers struct {
    Date     string `json:"date"`
    Covers   uint64 `json:"covers"`
    Seatings uint64 `json:"seatings"`
}

// HourBucket is one hour-of-day slot of the occupancy histogram.
type HourBucket struct {
    Hour   int    `json:"hour"`
    Covers uint64 `json:"covers"`
}

// Dashboard bundles every panel of the analytics page.
type Dashboard struct {
    Today               DailyCovers                       `json:"today"`
    Yesterday           DailyCovers                       `json:"yesterday"`
    AverageDiningMinute float64                           `json:"average_dining_minutes"`
    Histogram           []HourBucket                      `json:"hourly_histogram"`
    PeakHours           []int                             `json:"peak_hours"`
    RecentReservations  []repository.ReservationWithTable `json:"recent_reservations"`
}

// CoversForDay sums party sizes and counts seatings started on the
// given calendar day in the restaurant timezone.
func (s *AnalyticsService) CoversForDay(ctx context.Context, day time.Time) (DailyCovers, error) {
    from, to := dayBounds(day.In(s.loc))
    covers, seatings, err := s.analytics.CoversBetween(ctx, from, to)
    if err != nil {
        return DailyCovers{}, err
    }
    return DailyCovers{
        Date:     from.Format("2006-01-02"),
        Covers:   covers,
        Seatings: seatings,
    }, nil
}

// AverageDiningMinutes returns the mean dining duration over closed
// seatings in the trailing window, 0 when the window is empty.
func (s *AnalyticsService) AverageDiningMinutes(ctx context.Context) (float64, error) {
    since := s.now().AddDate(0, 0, -trailingDays)
    return s.analytics.AverageDiningMinutes(ctx, since)
}

// HourlyHistogram partitions seatings in the trailing window by
// hour-of-day of their start in the restaurant timezone, summing party
// sizes per bucket. It always returns exactly 24 buckets, zero-filled
// where no data exists, plus the peak hours.
func (s *AnalyticsService) HourlyHistogram(ctx context.Context) ([]HourBucket, []int, error) {
    since := s.now().AddDate(0, 0, -trailingDays)
    starts, err := s.analytics.SeatingStarts(ctx, since)
    if err != nil {
        return nil, nil, err
    }
    buckets := bucketByHour(starts, s.loc)
    return buckets, peakHours(buckets, peakHourCount), nil
}

// RecentReservations returns the last limit reservations newest first,
// annotated with their assigned table when present.
func (s *AnalyticsService) RecentReservations(ctx context.Context, limit int) ([]repository.ReservationWithTable, error) {
    return s.reservations.ListRecent(ctx, limit)
}

// BuildDashboard assembles every panel in one call for the dashboard
// endpoint.
func (s *AnalyticsService) BuildDashboard(ctx context.Context, recentLimit int) (*Dashboard, error) {
    now := s.now().In(s.loc)
    today, err := s.CoversForDay(ctx, now)
    if err != nil {
        return nil, err
    }
    yesterday, err := s.CoversForDay(ctx, now.AddDate(0, 0, -1))
    if err != nil {
        return nil, err
    }
    avg, err := s.AverageDiningMinutes(ctx)
    if err != nil {
        return nil, err
    }
    histogram, peaks, err := s.HourlyHistogram(ctx)
    if err != nil {
        return nil, err
    }
    recent, err := s.RecentReservations(ctx, recentLimit)
    if err != nil {
        return nil, err
    }
    return &Dashboard{
        Today:               today,
        Yesterday:           yesterday,
        AverageDiningMinute: avg,
        Histogram:           histogram,
        PeakHours:           peaks,
        RecentReservations:  recent,
    }, nil
}

// bucketByHour sums party sizes into 24 hour-of-day buckets. Start
// times are converted to the given location before bucketing.
func bucketByHour(starts []repository.SeatingStart, loc *time.Location) []HourBucket {
    buckets := make([]HourBucket, 24)
    for i := range buckets {
        buckets[i].Hour = i
    }
    for _, st := range starts {
        h := st.StartedAt.In(loc).Hour()
        buckets[h].Covers += uint64(st.PartySize)
    }
    return buckets
}

// peakHours returns the hours of the top n non-zero buckets, ordered by
// descending covers with ties broken by earlier hour. A stable sort
// over the hour-ordered buckets gives the tie-break for free.
func peakHours(buckets []HourBucket, n int) []int {
    ranked := make([]HourBucket, len(buckets))
    copy(ranked, buckets)
    sort.SliceStable(ranked, func(i, j int) bool {
        return ranked[i].Covers > ranked[j].Covers
    })
    peaks := make([]int, 0, n)
    for _, b := range ranked {
        if b.Covers == 0 || len(peaks) == n {
            break
        }
        peaks = append(peaks, b.Hour)
    }
    return peaks
}
