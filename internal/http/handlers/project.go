package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/http/response"
	"github.com/tilemart/storefront-backend/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ConvertCart saves the current session cart as a named project.
func (ph *ProjectHandler) ConvertCart(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	list, err := ph.projectService.ConvertCart(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, list)
}

// ListProjects loads the owner's saved projects and applies the search and
// status filters to that snapshot in-process.
func (ph *ProjectHandler) ListProjects(c *gin.Context) {
	loaded := ph.projectService.LoadProjects(c.Request.Context())
	filtered := types.FilterLists(loaded, c.Query("search"), c.Query("status"))
	response.RespondOK(c, gin.H{"projects": filtered})
}

func (ph *ProjectHandler) GetProject(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	list, err := ph.projectService.GetProject(c.Request.Context(), listID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (ph *ProjectHandler) DeleteProject(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	if err := ph.projectService.DeleteProject(c.Request.Context(), listID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// OrderSummary returns the plain-text order message for the external channel.
func (ph *ProjectHandler) OrderSummary(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	summary, err := ph.projectService.OrderSummary(c.Request.Context(), listID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.String(http.StatusOK, summary)
}
