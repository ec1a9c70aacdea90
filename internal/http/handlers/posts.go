package handlers

import (
	"context"
	"net/http"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/dkrasnove/bloghub/internal/domain/post"
	"github.com/dkrasnove/bloghub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type PostRegistry interface {
	ListByBlog(ctx context.Context, blogID int64, filter post.ListFilter) ([]post.Post, int, error)
	GetByID(ctx context.Context, id int64) (post.Post, error)
	Create(ctx context.Context, req post.CreatePostRequest, caller authz.Identity) (post.Post, error)
	Update(ctx context.Context, id int64, req post.UpdatePostRequest, caller authz.Identity) (post.Post, error)
	Remove(ctx context.Context, id int64, caller authz.Identity) (post.Post, error)
}

type PostsHandler struct {
	posts PostRegistry
}

func NewPostsHandler(posts PostRegistry) *PostsHandler {
	return &PostsHandler{posts: posts}
}

type listPostsQuery struct {
	Skip int    `form:"skip" binding:"omitempty,min=0"`
	Take int    `form:"take" binding:"omitempty,min=1,max=100"`
	Name string `form:"name" binding:"omitempty,max=200"`
	Sort string `form:"sort" binding:"omitempty,oneof=ASC DESC"`
}

func (h *PostsHandler) ListPostsByBlog(ctx *gin.Context) {
	blogID, ok := idParam(ctx)

	if !ok {
		return
	}

	var q listPostsQuery

	if err := ctx.ShouldBindQuery(&q); err != nil {
		RespondBadRequest(ctx, "Invalid query parameters", nil)
		return
	}

	filter := post.ListFilter{
		Skip:  q.Skip,
		Take:  q.Take,
		Order: post.SortOrder(q.Sort),
	}

	if q.Name != "" {
		filter.Name = &q.Name
	}

	items, total, err := h.posts.ListByBlog(ctx.Request.Context(), blogID, filter)

	if err != nil {
		respondServiceError(ctx, err, "Could not list posts")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

func (h *PostsHandler) GetPostByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	p, err := h.posts.GetByID(ctx.Request.Context(), id)

	if err != nil {
		respondServiceError(ctx, err, "Could not fetch post")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *PostsHandler) CreatePost(ctx *gin.Context) {
	caller, ok := middlewares.CallerFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req post.CreatePostRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.posts.Create(ctx.Request.Context(), req, caller)

	if err != nil {
		respondServiceError(ctx, err, "Could not create post")
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *PostsHandler) UpdatePost(ctx *gin.Context) {
	caller, ok := middlewares.CallerFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req post.UpdatePostRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.posts.Update(ctx.Request.Context(), id, req, caller)

	if err != nil {
		respondServiceError(ctx, err, "Could not update post")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *PostsHandler) RemovePost(ctx *gin.Context) {
	caller, ok := middlewares.CallerFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id, ok := idParam(ctx)

	if !ok {
		return
	}

	p, err := h.posts.Remove(ctx.Request.Context(), id, caller)

	if err != nil {
		respondServiceError(ctx, err, "Could not remove post")
		return
	}

	ctx.JSON(http.StatusOK, p)
}
