//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/handler/api"
	reqdto "academy-booking/internal/handler/dto/request"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/pkg/cookie"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/shared"
	"academy-booking/tests/common/builder"
	"academy-booking/tests/common/httptest"
	"academy-booking/tests/common/testutil"
	commandsmock "academy-booking/tests/mock/commands"
	queriesmock "academy-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockMemberQueries
	actor        *shared.Actor
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockMemberQueries(s.mockCtrl)
	s.actor = nil
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/admin", s.handler.AdminLogin)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) { actAs(s.actor)(c) }, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	ub := builder.NewUserBuilder()
	reqBody := ub.BuildLoginDTO()
	member, err := ub.BuildDomain()
	s.Require().NoError(err)
	expectedToken := "test-jwt-token"

	s.Run("success: returns 200 OK and sets the access cookie", func() {
		s.mockCommands.EXPECT().MemberLogin(gomock.Any(), commands.MemberLoginInput{Name: ub.Name, Phone: ub.Phone}).
			Return(&commands.LoginResult{User: member, AccessToken: expectedToken, Created: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expectedToken, response.AccessToken)
		s.Equal(member.ID(), response.User.ID)
		s.Equal("member", response.User.Role)
		s.True(response.Created)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal(expectedToken, c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		bound := []testCaseAuth{
			{name: "name boundary OK (80 chars)", mutate: testutil.Field("name", strings.Repeat("a", 80)), expectCode: http.StatusOK},
			{name: "name boundary invalid (81 chars)", mutate: testutil.Field("name", strings.Repeat("a", 81)), expectCode: http.StatusBadRequest},
			{name: "phone boundary invalid (5 chars)", mutate: testutil.Field("phone", "12345"), expectCode: http.StatusBadRequest},
		}

		missing := []testCaseAuth{
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: phone (required)", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
		}

		empty := []testCaseAuth{
			{name: "empty name", mutate: testutil.Field("name", ""), expectCode: http.StatusBadRequest},
			{name: "empty phone", mutate: testutil.Field("phone", ""), expectCode: http.StatusBadRequest},
		}

		for _, group := range [][]testCaseAuth{bound, missing, empty} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusOK {
						name, _ := requestMap["name"].(string)
						phone, _ := requestMap["phone"].(string)
						s.mockCommands.EXPECT().MemberLogin(gomock.Any(), commands.MemberLoginInput{Name: name, Phone: phone}).
							Return(&commands.LoginResult{User: member, AccessToken: expectedToken}, nil)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusOK {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
					}
				})
			}
		}
	})

	s.Run("error: 400 when the use case rejects the phone", func() {
		s.mockCommands.EXPECT().MemberLogin(gomock.Any(), gomock.Any()).Return(nil, shared.ErrInvalidInput).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *AuthHandlerTestSuite) TestAdminLogin() {
	url := "/auth/admin"
	admin, err := builder.NewUserBuilder().WithName("Coach").AsAdmin().BuildDomain()
	s.Require().NoError(err)

	s.Run("success: returns an admin token", func() {
		s.mockCommands.EXPECT().AdminLogin(gomock.Any(), config.TestAdminPIN).
			Return(&commands.LoginResult{User: admin, AccessToken: "admin-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.AdminLoginRequest{Pin: config.TestAdminPIN}, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("admin", response.User.Role)
	})

	s.Run("error: 401 on a wrong PIN", func() {
		s.mockCommands.EXPECT().AdminLogin(gomock.Any(), "0000").Return(nil, shared.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.AdminLoginRequest{Pin: "0000"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid credentials")
	})

	s.Run("error: 400 on a short PIN", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.AdminLoginRequest{Pin: "12"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
	c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	s.Require().NotNil(c)
	s.Empty(c.Value)
	s.Negative(c.MaxAge)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the member with children", func() {
		ub := builder.NewUserBuilder().WithChildren("Noa Levi").WithPlan("p8", false)
		s.actor = &shared.Actor{ID: ub.ID, Role: user.RoleMember}
		s.mockQueries.EXPECT().Me(gomock.Any(), ub.ID).Return(ub.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")

		var response resdto.MemberResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(ub.Name, response.Name)
		s.Require().Len(response.Children, 1)
		s.Equal("Noa Levi", response.Children[0].Name)
	})

	s.Run("error: 401 without an authenticated caller", func() {
		s.actor = nil
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
