package api

import (
	"net/http"

	reqdto "academy-booking/internal/handler/dto/request"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.ReservationCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.ReservationCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Book a session
// @Description Admit the member or one of their children into a session
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookRequest true "Booking request"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Book(c.Request.Context(), actor, req.ToInput(actor.ID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+result.Booking.ID().String())
	c.JSON(http.StatusCreated, resdto.FromBookResult(result))
}

// @Summary List bookings
// @Description Own bookings; an admin may pass memberId
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param memberId query string false "Member ID (admin only)"
// @Param includeCancelled query bool false "Include cancelled bookings"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	memberID, err := query.Member(actor.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid memberId", nil)
		return
	}
	views, err := h.q.ListForMember(c.Request.Context(), actor, memberID, query.IncludeCancelled)
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

// @Summary Cancel booking
// @Description Idempotent; cancelling a missing or cancelled booking also succeeds
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Toggle attendance
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/attendance [post]
func (h *BookingHandler) ToggleAttendance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	b, err := h.cmds.ToggleAttendance(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}
