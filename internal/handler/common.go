package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/Khkimov/restaurant-table-ms/internal/repository"
    "github.com/Khkimov/restaurant-table-ms/internal/service"
)

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid " + name)
    }
    return id, nil
}

// domainError maps service and repository errors onto JSON responses:
// validation failures become 400 with the offending field, missing
// entities 404, rejected transitions 409, and everything else a generic
// 500 so driver details never leak to the client.
func domainError(c echo.Context, err error) error {
    var verr *service.ValidationError
    switch {
    case errors.As(err, &verr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "field": verr.Field})
    case errors.Is(err, repository.ErrTableNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
    case errors.Is(err, repository.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, service.ErrTableOccupied):
        return c.JSON(http.StatusConflict, echo.Map{"error": "table already has an open seating"})
    case errors.Is(err, service.ErrInvalidTransition):
        return c.JSON(http.StatusConflict, echo.Map{"error": "status transition not allowed"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}
