package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkrasnove/bloghub/internal/config"
	"github.com/dkrasnove/bloghub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserRegistrar interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
}

type UserAuthenticator interface {
	Login(ctx context.Context, req user.LoginRequest) (string, error)
}

type AuthHandler struct {
	registrar UserRegistrar
	auth      UserAuthenticator
}

func NewAuthHandler(registrar UserRegistrar, auth UserAuthenticator) *AuthHandler {
	return &AuthHandler{
		registrar: registrar,
		auth:      auth,
	}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.registrar.Create(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			RespondConflict(ctx, "username_taken", "Username is already in use.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup + bcrypt compare
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	token, err := h.auth.Login(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": token,
	})
}
