package handler

import (
    "context"
    "database/sql"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
    "github.com/Khkimov/restaurant-table-ms/internal/repository"
    "github.com/Khkimov/restaurant-table-ms/internal/service"
)

// Stub stores backing a real FloorService, so handler tests exercise
// the actual bind-then-validate path without a database.

type stubRunner struct{}

func (stubRunner) WithinTx(_ context.Context, fn func(tx *sql.Tx) error) error { return fn(nil) }

type stubTables struct{ table model.Table }

func (s *stubTables) List(_ context.Context) ([]model.Table, error) {
    return []model.Table{s.table}, nil
}

func (s *stubTables) CountByStatus(_ context.Context) (map[string]int, error) {
    return map[string]int{s.table.Status: 1}, nil
}

func (s *stubTables) GetForUpdateTx(_ context.Context, _ *sql.Tx, id uint64) (*model.Table, error) {
    if id != s.table.ID {
        return nil, repository.ErrTableNotFound
    }
    copied := s.table
    return &copied, nil
}

func (s *stubTables) UpdateStatusTx(_ context.Context, _ *sql.Tx, _ uint64, status string) error {
    s.table.Status = status
    return nil
}

type stubSeatings struct{ open int }

func (s *stubSeatings) CountOpenTx(_ context.Context, _ *sql.Tx, _ uint64) (int, error) {
    return s.open, nil
}

func (s *stubSeatings) CreateTx(_ context.Context, _ *sql.Tx, seating *model.Seating) error {
    seating.ID = 1
    s.open++
    return nil
}

func (s *stubSeatings) CloseOpenTx(_ context.Context, _ *sql.Tx, _ uint64, _ time.Time) (int64, error) {
    closed := int64(s.open)
    s.open = 0
    return closed, nil
}

type stubReservations struct{}

func (stubReservations) CreateTx(_ context.Context, _ *sql.Tx, res *model.Reservation) error {
    res.ID = 1
    return nil
}

func (stubReservations) GetForUpdateTx(_ context.Context, _ *sql.Tx, _ uint64) (*model.Reservation, error) {
    return nil, repository.ErrReservationNotFound
}

func (stubReservations) UpdateStatusTx(_ context.Context, _ *sql.Tx, _ uint64, _ string) error {
    return nil
}

func (stubReservations) CountActiveClaimsTx(_ context.Context, _ *sql.Tx, _, _ uint64, _ time.Time) (int, error) {
    return 0, nil
}

func (stubReservations) ListActiveBetween(_ context.Context, _, _ time.Time) ([]repository.ReservationWithTable, error) {
    return nil, nil
}

func (stubReservations) ListRecent(_ context.Context, _ int) ([]repository.ReservationWithTable, error) {
    return nil, nil
}

type stubOutbox struct{}

func (stubOutbox) AppendTx(_ context.Context, _ *sql.Tx, _ ...string) error { return nil }

func newFloorHandlerWithTable(table model.Table) *FloorHandler {
    svc := service.NewFloorService(stubRunner{}, &stubTables{table: table}, &stubSeatings{}, stubReservations{}, stubOutbox{}, time.UTC)
    return NewFloorHandler(svc)
}

func seatRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/tables/1/seat", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("1")
    return c, rec
}

func TestSeatWalkIn_NonPositivePartySizeNamesField(t *testing.T) {
    for _, body := range []string{`{"party_size":-3}`, `{"party_size":0}`} {
        h := newFloorHandlerWithTable(model.Table{ID: 1, Name: "T1", Capacity: 4, Status: model.TableAvailable})
        c, rec := seatRequest(t, body)
        if err := h.SeatWalkIn(c); err != nil {
            t.Fatalf("SeatWalkIn(%s) = %v", body, err)
        }
        if rec.Code != http.StatusBadRequest {
            t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
        }
        // the response must name the offending field, not fail the bind
        if !strings.Contains(rec.Body.String(), `"field":"party_size"`) {
            t.Errorf("body = %s, want party_size field error", rec.Body.String())
        }
    }
}

func TestSeatWalkIn_CreatedOnSuccess(t *testing.T) {
    h := newFloorHandlerWithTable(model.Table{ID: 1, Name: "T1", Capacity: 4, Status: model.TableAvailable})
    c, rec := seatRequest(t, `{"party_size":3}`)
    if err := h.SeatWalkIn(c); err != nil {
        t.Fatalf("SeatWalkIn() = %v", err)
    }
    if rec.Code != http.StatusCreated {
        t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
    }
    if !strings.Contains(rec.Body.String(), `"party_size":3`) {
        t.Errorf("body = %s, want created seating", rec.Body.String())
    }
}
