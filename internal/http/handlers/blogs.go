package handlers

import (
	"context"
	"net/http"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/dkrasnove/bloghub/internal/domain/blog"
	"github.com/dkrasnove/bloghub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type BlogRegistry interface {
	List(ctx context.Context, page blog.Page) ([]blog.Blog, int, error)
	GetByID(ctx context.Context, id int64) (blog.Blog, error)
	GetByOwner(ctx context.Context, userID int64) (blog.Blog, error)
	Create(ctx context.Context, req blog.CreateBlogRequest, caller authz.Identity) (blog.Blog, error)
	Update(ctx context.Context, id int64, req blog.UpdateBlogRequest, caller authz.Identity) (blog.Blog, error)
	Remove(ctx context.Context, id int64, caller authz.Identity) (blog.Blog, error)
}

type BlogsHandler struct {
	blogs BlogRegistry
}

func NewBlogsHandler(blogs BlogRegistry) *BlogsHandler {
	return &BlogsHandler{blogs: blogs}
}

func (h *BlogsHandler) ListBlogs(ctx *gin.Context) {
	var page blog.Page

	if err := ctx.ShouldBindQuery(&page); err != nil {
		RespondBadRequest(ctx, "Invalid pagination", nil)
		return
	}

	items, total, err := h.blogs.List(ctx.Request.Context(), page)

	if err != nil {
		RespondInternal(ctx, "Could not list blogs")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

func (h *BlogsHandler) GetBlogByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	b, err := h.blogs.GetByID(ctx.Request.Context(), id)

	if err != nil {
		respondServiceError(ctx, err, "Could not fetch blog")
		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BlogsHandler) GetBlogByOwner(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	b, err := h.blogs.GetByOwner(ctx.Request.Context(), id)

	if err != nil {
		respondServiceError(ctx, err, "Could not fetch blog")
		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BlogsHandler) CreateBlog(ctx *gin.Context) {
	caller, ok := middlewares.CallerFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req blog.CreateBlogRequest

	if !BindJSON(ctx, &req) {
		return
	}

	b, err := h.blogs.Create(ctx.Request.Context(), req, caller)

	if err != nil {
		respondServiceError(ctx, err, "Could not create blog")
		return
	}

	ctx.JSON(http.StatusCreated, b)
}

func (h *BlogsHandler) UpdateBlog(ctx *gin.Context) {
	caller, ok := middlewares.CallerFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req blog.UpdateBlogRequest

	if !BindJSON(ctx, &req) {
		return
	}

	b, err := h.blogs.Update(ctx.Request.Context(), id, req, caller)

	if err != nil {
		respondServiceError(ctx, err, "Could not update blog")
		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BlogsHandler) RemoveBlog(ctx *gin.Context) {
	caller, ok := middlewares.CallerFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id, ok := idParam(ctx)

	if !ok {
		return
	}

	b, err := h.blogs.Remove(ctx.Request.Context(), id, caller)

	if err != nil {
		respondServiceError(ctx, err, "Could not remove blog")
		return
	}

	ctx.JSON(http.StatusOK, b)
}
