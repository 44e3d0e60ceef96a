package controller

import (
	"strconv"

	"unicourse_backend/internal/service"
	"unicourse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApprovalController struct {
	Service *service.ApprovalService
}

func NewApprovalController(svc *service.ApprovalService) *ApprovalController {
	return &ApprovalController{Service: svc}
}

// GetApproval godoc
// @Summary Fetch one approval record
// @Tags course-approvals
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "approval record id"
// @Success 200 {object} util.Response{data=model.ApprovalRecord}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/course-approvals/{id} [get]
func (c *ApprovalController) GetApproval(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	record, err := c.Service.GetApproval(ctx.Param("id"), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// Decide godoc
// @Summary Record a reviewer decision on an approval record
// @Description Applies approve / reject / request_revision and advances the
// @Description course through the review chain.
// @Tags course-approvals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "approval record id"
// @Param body body service.DecisionRequest true "decision payload"
// @Success 200 {object} util.Response{data=service.DecisionResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/course-approvals/{id} [patch]
func (c *ApprovalController) Decide(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Decide(ctx.Param("id"), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// ListPending godoc
// @Summary List the caller's pending review queue
// @Tags course-approvals
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/course-approvals [get]
func (c *ApprovalController) ListPending(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	records, total, err := c.Service.ListPending(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// PendingCount godoc
// @Summary Pending review count for the caller
// @Tags course-approvals
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/course-approvals/pending-count [get]
func (c *ApprovalController) PendingCount(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	count, err := c.Service.PendingCount(user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"count": count})
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
