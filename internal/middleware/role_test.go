package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func runWithRole(t *testing.T, role interface{}, allowed ...model.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	rec := runWithRole(t, model.RoleAdmin, model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runWithRole(t, model.RoleCustomer, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runWithRole(t, model.RoleCustomer, model.RoleAdmin, model.RoleCustomer)
	assert.Equal(t, http.StatusOK, rec.Code)

	// missing role: JWTAuth never ran
	rec = runWithRole(t, nil, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// raw string in context is not a validated model.Role
	rec = runWithRole(t, "ADMIN", model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
