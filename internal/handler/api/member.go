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

type MemberHandler struct {
	cmds commands.MemberCommands
	q    queries.MemberQueries
}

func NewMemberHandler(cmds commands.MemberCommands, q queries.MemberQueries) *MemberHandler {
	return &MemberHandler{cmds: cmds, q: q}
}

// @Summary List members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.MemberResponse
// @Failure 403 {object} httperr.Response
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	views, err := h.q.List(c.Request.Context(), actor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromMemberViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Register a child
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddChildRequest true "Child"
// @Success 201 {object} resdto.ChildResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /members/me/children [post]
func (h *MemberHandler) AddChild(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.AddChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	child, err := h.cmds.AddChild(c.Request.Context(), actor, actor.ID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromChild(child))
}

// @Summary Remove a child
// @Tags members
// @Security BearerAuth
// @Param childId path string true "Child ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /members/me/children/{childId} [delete]
func (h *MemberHandler) RemoveChild(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	childID, ok := uuidParam(c, "childId")
	if !ok {
		return
	}
	if err := h.cmds.RemoveChild(c.Request.Context(), actor, actor.ID, childID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Select a monthly plan
// @Description Starts the plan today and resets the paid flag
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SelectPlanRequest true "Plan"
// @Success 200 {object} resdto.SubscriptionResponse
// @Failure 400 {object} httperr.Response
// @Router /members/me/plan [put]
func (h *MemberHandler) SelectPlan(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	sub, err := h.cmds.SelectPlan(c.Request.Context(), actor, actor.ID, req.PlanID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubscription(sub))
}

// @Summary Set plan payment flag
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body reqdto.SetPaymentRequest true "Payment flag"
// @Success 200 {object} resdto.SubscriptionResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /members/{id}/payment [put]
func (h *MemberHandler) SetPayment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	sub, err := h.cmds.SetPlanPaid(c.Request.Context(), actor, memberID, *req.Paid)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubscription(sub))
}

// @Summary Plan catalog
// @Tags members
// @Produce json
// @Success 200 {array} resdto.PlanResponse
// @Router /plans [get]
func (h *MemberHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromPlans(h.q.Plans()))
}
