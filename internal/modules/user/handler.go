package user

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/pkg/response"
	sessionpkg "github.com/mindlog/core/internal/pkg/session"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/users")

	g.POST("/register", h.register)
	g.POST("/login", h.login)

	a := g.Group("", authMW)
	a.GET("/me", h.me)
	a.POST("/change-password", h.changePassword)
	a.POST("/logout", h.logout)
}

// POST /users/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) || errors.Is(err, errUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	token, _, err := sessionpkg.Issue(h.svc.db, u.ID, c.ClientIP(), c.Request.UserAgent(), sessionpkg.DefaultTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, loginResponse{Token: token, User: toResponse(u)})
}

// POST /users/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errBadCredentials) {
			response.UnauthorizedMsg(c, errBadCredentials.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, loginResponse{Token: token, User: toResponse(u)})
}

// GET /users/me
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, toResponse(u))
}

// POST /users/change-password
func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.svc.ChangePassword(
		middleware.CurrentUserID(c),
		middleware.CurrentSessionID(c),
		dto.OldPassword,
		dto.NewPassword,
	)
	if err != nil {
		if errors.Is(err, errBadCredentials) {
			response.UnauthorizedMsg(c, errBadCredentials.Error())
			return
		}
		if errors.Is(err, errPasswordSameAsOld) {
			response.BadRequest(c, errPasswordSameAsOld.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "密码修改成功"})
}

// POST /users/logout
func (h *Handler) logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	sessionID := middleware.CurrentSessionID(c)
	if sessionID != "" {
		_ = sessionpkg.Revoke(h.svc.db, userID, sessionID)
	}
	response.OK(c, gin.H{"message": "已退出登录"})
}
