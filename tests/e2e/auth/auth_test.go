//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"academy-booking/internal/handler/dto/request"
	"academy-booking/internal/handler/dto/response"
	"academy-booking/tests/common/authtest"
	"academy-booking/tests/common/dbtest"
	"academy-booking/tests/common/httptest"
	"academy-booking/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL      = "/api/auth/login"
	adminLoginURL = "/api/auth/admin"
	logoutURL     = "/api/auth/logout"
	meURL         = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) TestLogin() {
	s.Run("first sign-in creates the household", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Name: "Noa Cohen", Phone: "+972 52-111-2233"}, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.LoginResponse
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(s.T(), resp.Created)
		assert.Equal(s.T(), "member", resp.User.Role)
		assert.Equal(s.T(), "+972521112233", resp.User.Phone)
	})

	s.Run("same phone signs into the same household", func() {
		id := dbtest.CreateTestMember(s.T(), s.DB, "Noa Cohen", "+972521112233")

		_, member := authtest.LoginMember(s.T(), s.Router, "Noa Cohen", "+972-52-111-2233")
		assert.Equal(s.T(), id, member.ID)
	})

	s.Run("invalid phone", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Name: "Noa", Phone: "call me maybe"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})
}

func (s *authSuite) TestAdminLogin() {
	s.Run("correct pin", func() {
		token := authtest.LoginAdmin(s.T(), s.Router)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var me response.MemberResponse
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &me))
		assert.Equal(s.T(), "admin", me.Role)
	})

	s.Run("repeated admin sign-ins keep one admin", func() {
		first := authtest.LoginAdmin(s.T(), s.Router)
		second := authtest.LoginAdmin(s.T(), s.Router)
		require.NotEmpty(s.T(), first)
		require.NotEmpty(s.T(), second)

		var admins int
		err := s.DB.QueryRow(s.T().Context(), "SELECT count(*) FROM users WHERE role = 'admin'").Scan(&admins)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 1, admins)
	})

	s.Run("wrong pin", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, adminLoginURL,
			request.AdminLoginRequest{Pin: "0000"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid credentials")
	})
}

func (s *authSuite) TestMe() {
	s.Run("children are listed", func() {
		token, member := authtest.LoginMember(s.T(), s.Router, "Dana Levi", "+972501234567")
		dbtest.CreateTestChild(s.T(), s.DB, member.ID, "Maya")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var me response.MemberResponse
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &me))
		require.Len(s.T(), me.Children, 1)
		assert.Equal(s.T(), "Maya", me.Children[0].Name)
	})

	s.Run("no token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("cookie alone authenticates", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Name: "Dana Levi", Phone: "+972501234567"}, "")
		require.Equal(s.T(), http.StatusOK, w.Code)

		me := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, meURL, nil,
			httptest.ExtractCookies(w), "")
		assert.Equal(s.T(), http.StatusOK, me.Code, me.Body.String())
	})
}

func (s *authSuite) TestLogout() {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
	require.Equal(s.T(), http.StatusNoContent, w.Code)

	c := httptest.ExtractCookie(w, "access_token")
	require.NotNil(s.T(), c)
	assert.Empty(s.T(), c.Value)
}
