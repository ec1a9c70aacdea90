package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dkrasnove/bloghub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error)
	Remove(ctx context.Context, id int64) (user.User, error)
}

type UsersHandler struct {
	users UserDirectory
}

func NewUsersHandler(users UserDirectory) *UsersHandler {
	return &UsersHandler{users: users}
}

// FindByUsername is the soft lookup: an unknown username answers 200 with
// a null body, not a 404.
func (h *UsersHandler) FindByUsername(ctx *gin.Context) {
	username := ctx.Param("username")

	u, err := h.users.FindByUsername(ctx.Request.Context(), username)

	if err != nil {
		RespondInternal(ctx, "Could not look up user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.users.Update(ctx.Request.Context(), id, req)

	if err != nil {
		respondServiceError(ctx, err, "Could not update user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) RemoveUser(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	u, err := h.users.Remove(ctx.Request.Context(), id)

	if err != nil {
		respondServiceError(ctx, err, "Could not remove user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// idParam parses the :id path segment; responds 400 on garbage.
func idParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid id", nil)
		return 0, false
	}

	return id, true
}
