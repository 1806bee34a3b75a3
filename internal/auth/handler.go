package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventra/backend/internal/models"
	"github.com/eventra/backend/pkg/response"
	"github.com/eventra/backend/pkg/utils"
)

// SignUpRequest is the body for POST /api/auth/signup.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// SignInRequest is the body for POST /api/auth/signin.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// SignUp handles POST /api/auth/signup.
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	existing, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("lookup user by email failed", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	if existing != nil {
		response.Conflict(c, "email already registered")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password failed", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	u := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Surname:  req.Surname,
	}
	if err := h.repo.Create(c.Request.Context(), u); err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	response.Created(c, gin.H{"uuid": u.UUID})
}

// SignIn handles POST /api/auth/signin.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	u, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("lookup user by email failed", zap.Error(err))
		response.Internal(c, "failed to sign in")
		return
	}
	if u == nil || !utils.CheckPassword(req.Password, u.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(u.UUID, u.Email)
	if err != nil {
		h.logger.Error("generate token failed", zap.Error(err))
		response.Internal(c, "failed to sign in")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: u.ToPublic()})
}

// SignOut handles POST /api/auth/signout. Stateless JWTs have nothing to
// revoke server-side; the client drops its token.
func (h *Handler) SignOut(c *gin.Context) {
	response.OK(c, gin.H{"message": "signed out"})
}
