package service

import (
    "testing"
    "time"
)

func validInput() ReservationInput {
    return ReservationInput{
        GuestName: "Ivan",
        Phone:     "+71234567890",
        PartySize: 2,
        StartAt:   "2024-01-01T19:00",
    }
}

func TestValidateReservation_Valid(t *testing.T) {
    startAt, verr := validateReservation(validInput(), time.UTC)
    if verr != nil {
        t.Fatalf("validateReservation() = %v, want nil", verr)
    }
    want := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
    if !startAt.Equal(want) {
        t.Errorf("startAt = %v, want %v", startAt, want)
    }
}

func TestValidateReservation_FirstFailingField(t *testing.T) {
    tests := []struct {
        name    string
        mutate  func(*ReservationInput)
        field   string
    }{
        {"short name", func(in *ReservationInput) { in.GuestName = "И" }, "guest_name"},
        {"empty name", func(in *ReservationInput) { in.GuestName = "" }, "guest_name"},
        {"short phone", func(in *ReservationInput) { in.Phone = "12345" }, "phone"},
        {"zero party", func(in *ReservationInput) { in.PartySize = 0 }, "party_size"},
        {"negative party", func(in *ReservationInput) { in.PartySize = -2 }, "party_size"},
        {"party too large", func(in *ReservationInput) { in.PartySize = 21 }, "party_size"},
        {"bad start", func(in *ReservationInput) { in.StartAt = "tonight" }, "start_at"},
        {"empty start", func(in *ReservationInput) { in.StartAt = "" }, "start_at"},
        {
            // name fails before phone: the first failing field wins
            "name before phone",
            func(in *ReservationInput) { in.GuestName = "X"; in.Phone = "1" },
            "guest_name",
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            in := validInput()
            tt.mutate(&in)
            _, verr := validateReservation(in, time.UTC)
            if verr == nil {
                t.Fatal("validateReservation() = nil, want error")
            }
            if verr.Field != tt.field {
                t.Errorf("Field = %q, want %q", verr.Field, tt.field)
            }
        })
    }
}

func TestValidateReservation_TwoRuneName(t *testing.T) {
    in := validInput()
    in.GuestName = "Ян" // two runes, more than two bytes
    if _, verr := validateReservation(in, time.UTC); verr != nil {
        t.Errorf("validateReservation() = %v, want nil", verr)
    }
}

func TestParseStartAt_Layouts(t *testing.T) {
    loc := time.FixedZone("RST", 3*3600)
    tests := []struct {
        name  string
        input string
        want  time.Time
    }{
        {"datetime-local", "2024-01-01T19:00", time.Date(2024, 1, 1, 19, 0, 0, 0, loc)},
        {"with seconds", "2024-01-01T19:00:30", time.Date(2024, 1, 1, 19, 0, 30, 0, loc)},
        {"rfc3339", "2024-01-01T19:00:00Z", time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, err := parseStartAt(tt.input, loc)
            if err != nil {
                t.Fatalf("parseStartAt(%q) error = %v", tt.input, err)
            }
            if !got.Equal(tt.want) {
                t.Errorf("parseStartAt(%q) = %v, want %v", tt.input, got, tt.want)
            }
        })
    }
}
