package service

import (
    "time"
)

// Reservation intake bounds. Party size limits match the intake form;
// name and phone minimums reject obviously unusable contact details.
const (
    minGuestNameLen = 2
    minPhoneLen     = 10
    minPartySize    = 1
    maxPartySize    = 20
)

// startAtLayouts are the accepted startAt formats: the HTML
// datetime-local value the intake form submits, plus RFC3339 for API
// callers that send full timestamps.
var startAtLayouts = []string{
    "2006-01-02T15:04",
    "2006-01-02T15:04:05",
    time.RFC3339,
}

// ReservationInput carries the raw reservation intake fields. StartAt
// stays a string until validation so a malformed value is reported as a
// field error rather than a bind failure.
type ReservationInput struct {
    GuestName       string  `json:"guest_name"`
    Phone           string  `json:"phone"`
    PartySize       int     `json:"party_size"`
    StartAt         string  `json:"start_at"`
    SpecialRequests *string `json:"special_requests,omitempty"`
    TableID         *uint64 `json:"table_id,omitempty"`
}

// validateReservation checks intake fields in form order and returns a
// ValidationError for the first one that fails, together with the
// parsed start time on success. Table existence is checked later inside
// the transaction, where the row can be locked.
func validateReservation(in ReservationInput, loc *time.Location) (time.Time, *ValidationError) {
    if len([]rune(in.GuestName)) < minGuestNameLen {
        return time.Time{}, &ValidationError{Field: "guest_name", Message: "must be at least 2 characters"}
    }
    if len(in.Phone) < minPhoneLen {
        return time.Time{}, &ValidationError{Field: "phone", Message: "must be at least 10 characters"}
    }
    if in.PartySize < minPartySize || in.PartySize > maxPartySize {
        return time.Time{}, &ValidationError{Field: "party_size", Message: "must be between 1 and 20"}
    }
    startAt, err := parseStartAt(in.StartAt, loc)
    if err != nil {
        return time.Time{}, &ValidationError{Field: "start_at", Message: "must be a valid date and time"}
    }
    return startAt, nil
}

// parseStartAt parses a reservation start time. Layouts without a zone
// are interpreted in the restaurant timezone.
func parseStartAt(s string, loc *time.Location) (time.Time, error) {
    var lastErr error
    for _, layout := range startAtLayouts {
        t, err := time.ParseInLocation(layout, s, loc)
        if err == nil {
            return t, nil
        }
        lastErr = err
    }
    return time.Time{}, lastErr
}
