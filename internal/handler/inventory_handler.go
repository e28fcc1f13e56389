package handler

import (
	"net/http"

	"bizhive/internal/middleware"
	"bizhive/internal/service"
	"bizhive/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/branches/:id/inventory", h.ListItems)
	router.POST("/api/branches/:id/inventory", h.CreateItem)
	router.GET("/api/branches/:id/inventory/export", h.ExportCSV)
	router.POST("/api/branches/:id/inventory/import", h.ImportCSV)
	router.POST("/api/inventory/:id/adjust", h.AdjustQuantity)
}

// ListItems lists the inventory of one branch
// @Summary      List inventory
// @Description  Retrieves the inventory items of a branch the caller may view, with optional search and category filter
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id        path      string  true   "Branch ID"
// @Param        search    query     string  false  "Search by product name or SKU"
// @Param        category  query     string  false  "Filter by category"
// @Success      200       {object}  response.Response{data=object}
// @Failure      403       {object}  response.Response
// @Router       /api/branches/{id}/inventory [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventoryService.ListByBranch(
		c.Request.Context(), middleware.AccessFrom(c), c.Param("id"), c.Query("search"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
	}))
}

// CreateItem adds a product to a branch's inventory
// @Summary      Create inventory item
// @Description  Creates a new inventory item in a branch the caller may edit
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Branch ID"
// @Param        payload  body      service.CreateItemRequest  true  "Create Item Payload"
// @Success      201      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/branches/{id}/inventory [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), middleware.AccessFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// AdjustQuantity applies a signed stock delta under a row lock
// @Summary      Adjust quantity
// @Description  Applies a signed delta to an item's quantity; adjustments that would go below zero are rejected without changing stored state
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Item ID"
// @Param        payload  body      service.AdjustQuantityRequest  true  "Adjust Payload"
// @Success      200      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	var req service.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.AdjustQuantity(c.Request.Context(), middleware.AccessFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// ExportCSV downloads a branch's inventory as CSV
// @Summary      Export inventory CSV
// @Description  Exports the inventory of a branch the caller may view as a CSV file
// @Tags         inventory
// @Security     BearerAuth
// @Produce      text/csv
// @Param        id   path      string  true  "Branch ID"
// @Success      200  {string}  string  "CSV content"
// @Failure      403  {object}  response.Response
// @Router       /api/branches/{id}/inventory/export [get]
func (h *InventoryHandler) ExportCSV(c *gin.Context) {
	data, err := h.inventoryService.ExportCSV(c.Request.Context(), middleware.AccessFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inventory.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ImportCSV bulk-creates inventory items from an uploaded CSV
// @Summary      Import inventory CSV
// @Description  Creates inventory items from a CSV upload; rows only insert, existing items are never modified, and any malformed row rejects the whole file
// @Tags         inventory
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Branch ID"
// @Param        file  formData  file    true  "CSV file"
// @Success      201   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /api/branches/{id}/inventory/import [post]
func (h *InventoryHandler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "CSV file is missing"))
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Failed to read uploaded file"))
		return
	}
	defer f.Close()

	res, err := h.inventoryService.ImportCSV(c.Request.Context(), middleware.AccessFrom(c), c.Param("id"), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}
