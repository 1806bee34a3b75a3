package users

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventra/backend/pkg/response"
)

// Handler handles user HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a users handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetByID handles GET /api/user/getUserDataById?uuid=.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Query("uuid"))
	if err != nil {
		response.BadRequest(c, "invalid uuid")
		return
	}
	u, err := h.repo.GetByUUID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load user")
		return
	}
	if u == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, u.ToPublic())
}
