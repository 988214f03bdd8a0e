//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/handler/api"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"
	"academy-booking/tests/common/builder"
	"academy-booking/tests/common/httptest"
	"academy-booking/tests/common/testutil"
	commandsmock "academy-booking/tests/mock/commands"
	queriesmock "academy-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSessionCommands
	mockQueries  *queriesmock.MockSessionQueries
	mockBookings *queriesmock.MockBookingQueries
	admin        shared.Actor
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSessionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	s.mockBookings = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.admin = shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

	h := api.NewSessionHandler(s.mockCommands, s.mockQueries, s.mockBookings)
	s.router.GET("/sessions", h.List)
	s.router.GET("/sessions/:id", h.Get)
	g := s.router.Group("/sessions", actAs(&s.admin))
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/bookings", h.Roster)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) TestList() {
	s.Run("success: exposes occupancy and the full flag", func() {
		open := builder.NewSessionBuilder()
		full := builder.NewSessionBuilder().WithCapacity(2)
		s.mockQueries.EXPECT().List(gomock.Any(), queries.SessionFilter{}).
			Return([]*queries.SessionView{open.BuildView(3), full.BuildView(2)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions", nil, "")

		var response []resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal(4, response[0].SpotsLeft)
		s.False(response[0].Full)
		s.True(response[1].Full)
	})

	s.Run("success: forwards the audience filter", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f queries.SessionFilter) ([]*queries.SessionView, error) {
				s.Require().NotNil(f.Audience)
				s.Equal("adult", *f.Audience)
				return []*queries.SessionView{}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?audience=adult", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on an unknown audience", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?audience=seniors", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *SessionHandlerTestSuite) TestGet() {
	s.Run("error: 404 for an unknown session", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, shared.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Session not found")
	})
}

func (s *SessionHandlerTestSuite) TestCreate() {
	b := builder.NewSessionBuilder()
	reqBody := b.BuildDTO()

	s.Run("success: returns 201 with Location and the stored view", func() {
		created := b.BuildDomain()
		s.mockCommands.EXPECT().Create(gomock.Any(), s.admin, gomock.Any()).
			DoAndReturn(func(_ any, _ shared.Actor, in commands.CreateSessionInput) (any, error) {
				s.Equal(b.Title, in.Title)
				s.Equal(b.Audience, in.Audience)
				s.True(in.StartsAt.Equal(b.StartsAt))
				s.Equal(b.Capacity, in.Capacity)
				return created, nil
			}).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), b.ID).Return(b.BuildView(0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions", reqBody, "")

		var response resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/sessions/" + b.ID.String()})
		s.Equal(b.Capacity, response.SpotsLeft)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: title (required)", mutate: testutil.Field("title", nil)},
			{name: "unknown audience", mutate: testutil.Field("audience", "seniors")},
			{name: "ends before it starts", mutate: testutil.Field("endsAt", b.StartsAt.Add(-time.Hour).Format(time.RFC3339))},
			{name: "capacity boundary invalid (101)", mutate: testutil.Field("capacity", 101)},
			{name: "negative capacity", mutate: testutil.Field("capacity", -1)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sessions", requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *SessionHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/sessions/" + id.String()

	s.Run("error: 409 while confirmed bookings exist", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.admin, id, false).Return(shared.ErrSessionHasBookings).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "confirmed bookings")
	})

	s.Run("success: cascade=true cancels bookings and deletes", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.admin, id, true).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url+"?cascade=true", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on an unparsable cascade flag", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url+"?cascade=maybe", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cascade")
	})

	s.Run("error: 403 for a member", func() {
		s.admin.Role = user.RoleMember
		defer func() { s.admin.Role = user.RoleAdmin }()
		member := s.admin
		s.mockCommands.EXPECT().Delete(gomock.Any(), member, id, false).Return(shared.ErrPermissionDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

func (s *SessionHandlerTestSuite) TestRoster() {
	sessionID := uuid.New()
	views := []*queries.BookingView{
		builder.NewBookingBuilder().ForSession(sessionID).BuildView(),
		builder.NewBookingBuilder().ForSession(sessionID).WithPlayer("Noa Levi").With(func(b *builder.BookingBuilder) { b.Attended = true }).BuildView(),
	}
	s.mockBookings.EXPECT().Roster(gomock.Any(), s.admin, sessionID).Return(views, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+sessionID.String()+"/bookings", nil, "")

	var response []resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Require().Len(response, 2)
	s.Equal("Dana Levi", response[0].MemberName)
	s.True(response[1].Attended)
}
