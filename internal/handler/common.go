package handler // http handlers for the reservation API

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// errNoPrincipal is returned when the JWT middleware did not run or
// stored malformed values; callers answer 401.
var errNoPrincipal = errors.New("no authenticated principal in context")

// principalFrom rebuilds the authenticated principal from the request
// context. The JWT middleware stores a validated user id and role;
// handlers receive identity only through this value, never by reading
// session state elsewhere.
func principalFrom(c echo.Context) (model.Principal, error) {
	uid, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || uid == 0 {
		return model.Principal{}, errNoPrincipal
	}
	role, ok := c.Get(middleware.CtxRole).(model.Role)
	if !ok {
		return model.Principal{}, errNoPrincipal
	}
	return model.Principal{UserID: uid, Role: role}, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
