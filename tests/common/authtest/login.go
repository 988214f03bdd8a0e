//go:build unit || e2e

package authtest

import (
	"encoding/json"
	"net/http"
	"testing"

	"academy-booking/internal/handler/dto/request"
	"academy-booking/internal/handler/dto/response"
	"academy-booking/internal/pkg/config"
	"academy-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginMember signs a household in by phone and returns the access token and
// the member as the API reports it.
func LoginMember(t *testing.T, router *gin.Engine, name, phone string) (string, response.AuthorizedUser) {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Name: name, Phone: phone}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "access token cookie missing")
	require.Equal(t, resp.AccessToken, accessCookie.Value)

	return resp.AccessToken, resp.User
}

func LoginAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/admin",
		request.AdminLoginRequest{Pin: config.TestAdminPIN}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return resp.AccessToken
}
