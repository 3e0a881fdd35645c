package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

// AccessHandler manages the list of accounts allowed to sign in
type AccessHandler struct {
	guard *service.AccessGuard
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(guard *service.AccessGuard) *AccessHandler {
	return &AccessHandler{guard: guard}
}

// List returns every authorized account
func (h *AccessHandler) List(c *gin.Context) {
	users, err := h.guard.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Authorized users retrieved successfully", users)
}

// Add grants an account access
func (h *AccessHandler) Add(c *gin.Context) {
	var req request.AddAuthorizedUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.guard.AddUser(c.Request.Context(), GetCurrentUser(c), req.Email, enum.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User authorized successfully", user)
}

// Remove revokes an account's access
func (h *AccessHandler) Remove(c *gin.Context) {
	if err := h.guard.RemoveUser(c.Request.Context(), GetCurrentUser(c), c.Param("email")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
