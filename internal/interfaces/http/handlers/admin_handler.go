package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"keymint.backend/internal/interfaces/http/response"
	"keymint.backend/internal/usecases"
)

type AdminHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

func NewAdminHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *AdminHandler {
	return &AdminHandler{
		apiKeyUsecase: apiKeyUsecase,
	}
}

// ListUsers returns the joined user/key inventory. Authentication is
// enforced by the route's middleware.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := h.apiKeyUsecase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}
