package api

import (
	"net/http"

	"academy-booking/internal/domain/announcement"
	reqdto "academy-booking/internal/handler/dto/request"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	cmds commands.AnnouncementCommands
	q    queries.AnnouncementQueries
}

func NewAnnouncementHandler(cmds commands.AnnouncementCommands, q queries.AnnouncementQueries) *AnnouncementHandler {
	return &AnnouncementHandler{cmds: cmds, q: q}
}

func audienceQuery(c *gin.Context) (announcement.Audience, bool) {
	audience, err := announcement.NewAudience(c.Query("audience"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid audience", nil)
		return "", false
	}
	return audience, true
}

// @Summary List announcements
// @Description Active announcements, newest first
// @Tags announcements
// @Produce json
// @Param audience query string false "all, junior or adult"
// @Success 200 {array} resdto.AnnouncementResponse
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	audience, ok := audienceQuery(c)
	if !ok {
		return
	}
	views, err := h.q.List(c.Request.Context(), audience)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromAnnouncementViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Unseen announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param audience query string false "all, junior or adult"
// @Success 200 {array} resdto.AnnouncementResponse
// @Router /announcements/unseen [get]
func (h *AnnouncementHandler) Unseen(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	audience, ok := audienceQuery(c)
	if !ok {
		return
	}
	views, err := h.q.Unseen(c.Request.Context(), actor.ID, audience)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromAnnouncementViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Mark announcements as seen
// @Tags announcements
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.MarkSeenRequest true "Announcement IDs"
// @Success 204 "No Content"
// @Router /announcements/seen [post]
func (h *AnnouncementHandler) MarkSeen(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.MarkSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.MarkSeen(c.Request.Context(), actor, req.IDs); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Post an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} resdto.AnnouncementResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	a, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAnnouncement(a))
}
