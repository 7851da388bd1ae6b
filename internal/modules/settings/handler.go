package settings

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/settings", authMW)

	g.GET("", h.get)
	g.PUT("", h.update)
	g.GET("/api-key", h.getAPIKey)
	g.PUT("/api-key", h.setAPIKey)
	g.DELETE("/api-key", h.clearAPIKey)
}

// GET /settings/api-key
func (h *Handler) getAPIKey(c *gin.Context) {
	masked, err := h.svc.MaskedAPIKey(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errNoAPIKey) {
			response.NotFoundMsg(c, errNoAPIKey.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"api_key": masked})
}

// GET /settings
func (h *Handler) get(c *gin.Context) {
	res, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}

// PUT /settings
func (h *Handler) update(c *gin.Context) {
	var dto UpdateSettingsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.svc.Update(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errBadInterval) || errors.Is(err, errUnknownTheme) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}

type apiKeyDTO struct {
	APIKey string `json:"api_key"`
}

// PUT /settings/api-key
func (h *Handler) setAPIKey(c *gin.Context) {
	var dto apiKeyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, errEmptyAPIKey.Error())
		return
	}
	res, err := h.svc.SetAPIKey(middleware.CurrentUserID(c), dto.APIKey)
	if err != nil {
		if errors.Is(err, errEmptyAPIKey) {
			response.BadRequest(c, errEmptyAPIKey.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}

// DELETE /settings/api-key
func (h *Handler) clearAPIKey(c *gin.Context) {
	res, err := h.svc.ClearAPIKey(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}
