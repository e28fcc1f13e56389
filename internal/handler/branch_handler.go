package handler

import (
	"net/http"

	"bizhive/internal/middleware"
	"bizhive/internal/service"
	"bizhive/pkg/response"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

func (h *BranchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard", h.Dashboard)

	branches := router.Group("/api/branches")
	{
		branches.POST("", middleware.RequireAdmin(), h.CreateBranch)
		branches.GET("/:id", h.GetBranch)
		branches.PATCH("/:id/status", middleware.RequireAdmin(), h.UpdateBranchStatus)
	}
}

// Dashboard returns the caller's entry point
// @Summary      Dashboard
// @Description  Admins get their branches with counts; branch-bound users get a redirect target to their branch
// @Tags         branches
// @Security     BearerAuth
// @Produce      json
// @Param        include_inactive  query     bool  false  "Include inactive branches (admins only)"
// @Success      200               {object}  response.Response{data=service.DashboardResponse}
// @Failure      401               {object}  response.Response
// @Router       /api/dashboard [get]
func (h *BranchHandler) Dashboard(c *gin.Context) {
	ac := middleware.AccessFrom(c)
	includeInactive := c.Query("include_inactive") == "true"

	res, err := h.branchService.Dashboard(c.Request.Context(), ac, includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CreateBranch creates a branch owned by the caller
// @Summary      Create branch
// @Description  Creates a new branch owned by the authenticated admin
// @Tags         branches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBranchRequest  true  "Create Branch Payload"
// @Success      201      {object}  response.Response{data=service.BranchResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.branchService.Create(c.Request.Context(), middleware.AccessFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// GetBranch returns one branch with counts and the caller's permissions on it
// @Summary      Get branch
// @Description  Retrieves branch detail with employee/inventory counts and the caller's edit permission
// @Tags         branches
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Branch ID"
// @Success      200  {object}  response.Response{data=service.BranchDetailResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) GetBranch(c *gin.Context) {
	res, err := h.branchService.Get(c.Request.Context(), middleware.AccessFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// UpdateBranchStatus transitions a branch between active, maintenance, and inactive
// @Summary      Update branch status
// @Description  Changes the branch status; deactivation preserves all child records
// @Tags         branches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Branch ID"
// @Param        payload  body      service.UpdateBranchStatusRequest  true  "Status Payload"
// @Success      200      {object}  response.Response{data=service.BranchResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/branches/{id}/status [patch]
func (h *BranchHandler) UpdateBranchStatus(c *gin.Context) {
	var req service.UpdateBranchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.branchService.UpdateStatus(c.Request.Context(), middleware.AccessFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
