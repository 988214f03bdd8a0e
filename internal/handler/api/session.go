package api

import (
	"net/http"
	"strconv"

	reqdto "academy-booking/internal/handler/dto/request"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	cmds     commands.SessionCommands
	q        queries.SessionQueries
	bookings queries.BookingQueries
}

func NewSessionHandler(cmds commands.SessionCommands, q queries.SessionQueries, bookings queries.BookingQueries) *SessionHandler {
	return &SessionHandler{cmds: cmds, q: q, bookings: bookings}
}

// @Summary List sessions
// @Description Timetable with live occupancy
// @Tags sessions
// @Produce json
// @Param audience query string false "junior or adult"
// @Param from query string false "RFC 3339 lower bound on start"
// @Param to query string false "RFC 3339 upper bound on start"
// @Success 200 {array} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	var query reqdto.ListSessionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.List(c.Request.Context(), queries.SessionFilter{
		Audience: query.Audience,
		From:     query.From,
		To:       query.To,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromSessionViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromSessionView(view)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSessionRequest true "Session"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), created.ID())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromSessionView(view)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.Header("Location", "/api/sessions/"+created.ID().String())
	c.JSON(http.StatusCreated, resp)
}

// @Summary Update session
// @Description Patch title, audience, schedule or location; capacity is fixed
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.UpdateSessionRequest true "Patch"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id} [patch]
func (h *SessionHandler) Update(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if _, err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromSessionView(view)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Delete session
// @Description Refused while confirmed bookings exist unless cascade=true
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param cascade query bool false "Cancel confirmed bookings first"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cascade := false
	if v := c.Query("cascade"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cascade flag", nil)
			return
		}
		cascade = parsed
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id, cascade); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Session roster
// @Description Bookings of a session with attendance flags
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sessions/{id}/bookings [get]
func (h *SessionHandler) Roster(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	views, err := h.bookings.Roster(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromBookingViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
