package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"keymint.backend/internal/domain/entities"
	domainerrors "keymint.backend/internal/domain/errors"
	"keymint.backend/internal/interfaces/http/response"
	"keymint.backend/internal/usecases"
	"keymint.backend/pkg/metrics"
)

type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{
		apiKeyUsecase: apiKeyUsecase,
	}
}

// CreateKey issues a fresh unbound API key
func (h *ApiKeyHandler) CreateKey(c *gin.Context) {
	value, err := h.apiKeyUsecase.CreateKey(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.KeysIssued.Inc()
	response.Success(c, http.StatusOK, gin.H{"api_key": value})
}

// BindUser creates a user and a bound key in one transaction
func (h *ApiKeyHandler) BindUser(c *gin.Context) {
	var input entities.BindUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.apiKeyUsecase.BindUser(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "user created",
		"user_id": userID,
	})
}

// ValidateKey checks a key value and reports the verdict
func (h *ApiKeyHandler) ValidateKey(c *gin.Context) {
	var input entities.ValidateKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.apiKeyUsecase.Validate(c.Request.Context(), input.ApiKey)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.KeyValidations.WithLabelValues("not_found").Inc()
		} else {
			metrics.KeyValidations.WithLabelValues("error").Inc()
		}
		response.Error(c, err)
		return
	}

	metrics.KeyValidations.WithLabelValues(string(verdict.Reason)).Inc()
	response.Success(c, http.StatusOK, gin.H{
		"valid":   verdict.Valid,
		"message": verdictMessage(verdict.Reason),
	})
}

// ListKeys returns all raw key records
func (h *ApiKeyHandler) ListKeys(c *gin.Context) {
	keys, err := h.apiKeyUsecase.ListKeys(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count": len(keys),
		"data":  keys,
	})
}

func verdictMessage(reason entities.VerdictReason) string {
	switch reason {
	case entities.VerdictActive:
		return "API key is active"
	case entities.VerdictExpired:
		return "API key is out of date"
	case entities.VerdictRevoked:
		return "API key is revoked"
	}
	return string(reason)
}
