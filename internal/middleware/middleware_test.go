package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibook/room-reservation/internal/model"
	"github.com/unibook/room-reservation/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func runJWT(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, JWTAuth(testSecret)(okHandler)(c))
	return c, rec
}

func TestJWTAuthValidToken(t *testing.T) {
	b := uint64(3)
	tok, err := utils.NewAccessToken(testSecret, 42, model.RoleBuildingIncharge, &b, 15)
	require.NoError(t, err)

	c, rec := runJWT(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), c.Get("user_id"))
	assert.Equal(t, "BUILDING_INCHARGE", c.Get("role"))
	assert.Equal(t, uint64(3), c.Get("building_id"))
}

func TestJWTAuthStudentHasNoBuilding(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleStudent, nil, 15)
	require.NoError(t, err)

	c, rec := runJWT(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("building_id"))
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	wrongSecret, err := utils.NewAccessToken("other-secret", 42, model.RoleStudent, nil, 15)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(testSecret, 42, model.RoleStudent, nil, -5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + wrongSecret.Token},
		{"expired", "Bearer " + expired.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, rec := runJWT(t, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	run := func(role string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		mw := RequireRole(model.RoleProgramOffice)
		require.NoError(t, mw(okHandler)(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("PROGRAM_OFFICE").Code)
	assert.Equal(t, http.StatusForbidden, run("STUDENT").Code)
	assert.Equal(t, http.StatusForbidden, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("").Code)
}
