package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/pkg/pagination"
)

// GetCurrentUser returns the allow-listed account set by the auth middleware.
func GetCurrentUser(c *gin.Context) *entity.AuthorizedUser {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, _ := value.(*entity.AuthorizedUser)
	return user
}

func paginationParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}
