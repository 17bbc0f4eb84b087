package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

const testSecret = "unit-test-secret"

// invoke runs the JWTAuth middleware against a request carrying the
// given Authorization header and returns the response recorder plus
// whatever principal reached the inner handler.
func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *model.Principal) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *model.Principal
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		uid, _ := c.Get(CtxUserID).(uint64)
		role, _ := c.Get(CtxRole).(model.Role)
		seen = &model.Principal{UserID: uid, Role: role}
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, model.RoleCustomer, 5)
	require.NoError(t, err)

	rec, p := invoke(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, p)
	assert.Equal(t, uint64(42), p.UserID)
	assert.Equal(t, model.RoleCustomer, p.Role)
}

func TestJWTAuthRejects(t *testing.T) {
	expired := func() string {
		claims := jwt.MapClaims{
			"sub":  float64(1),
			"role": "CUSTOMER",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	wrongSecret := func() string {
		at, err := utils.NewAccessToken("other-secret", 1, model.RoleCustomer, 5)
		require.NoError(t, err)
		return at.Token
	}
	badRole := func() string {
		claims := jwt.MapClaims{
			"sub":  float64(1),
			"role": "SUPERUSER",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	noneAlg := func() string {
		claims := jwt.MapClaims{
			"sub":  float64(1),
			"role": "CUSTOMER",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired()},
		{"wrong secret", "Bearer " + wrongSecret()},
		{"unknown role", "Bearer " + badRole()},
		{"none algorithm", "Bearer " + noneAlg()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, p := invoke(t, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, p)
		})
	}
}

func TestSubjectID(t *testing.T) {
	id, ok := subjectID(float64(7))
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)

	id, ok = subjectID("123")
	assert.True(t, ok)
	assert.Equal(t, uint64(123), id)

	_, ok = subjectID("abc")
	assert.False(t, ok)
	_, ok = subjectID(nil)
	assert.False(t, ok)
}
