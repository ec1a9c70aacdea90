package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/dkrasnove/bloghub/internal/domain/blog"
	"github.com/dkrasnove/bloghub/internal/http/handlers"
	"github.com/dkrasnove/bloghub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type fakeBlogRegistry struct {
	listFn       func(ctx context.Context, page blog.Page) ([]blog.Blog, int, error)
	getByIDFn    func(ctx context.Context, id int64) (blog.Blog, error)
	getByOwnerFn func(ctx context.Context, userID int64) (blog.Blog, error)
	createFn     func(ctx context.Context, req blog.CreateBlogRequest, caller authz.Identity) (blog.Blog, error)
	updateFn     func(ctx context.Context, id int64, req blog.UpdateBlogRequest, caller authz.Identity) (blog.Blog, error)
	removeFn     func(ctx context.Context, id int64, caller authz.Identity) (blog.Blog, error)
}

func (f *fakeBlogRegistry) List(ctx context.Context, page blog.Page) ([]blog.Blog, int, error) {
	return f.listFn(ctx, page)
}

func (f *fakeBlogRegistry) GetByID(ctx context.Context, id int64) (blog.Blog, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBlogRegistry) GetByOwner(ctx context.Context, userID int64) (blog.Blog, error) {
	return f.getByOwnerFn(ctx, userID)
}

func (f *fakeBlogRegistry) Create(ctx context.Context, req blog.CreateBlogRequest, caller authz.Identity) (blog.Blog, error) {
	return f.createFn(ctx, req, caller)
}

func (f *fakeBlogRegistry) Update(ctx context.Context, id int64, req blog.UpdateBlogRequest, caller authz.Identity) (blog.Blog, error) {
	return f.updateFn(ctx, id, req, caller)
}

func (f *fakeBlogRegistry) Remove(ctx context.Context, id int64, caller authz.Identity) (blog.Blog, error) {
	return f.removeFn(ctx, id, caller)
}

// static token verifier so protected routes can be exercised end to end.
type fakeTokens struct {
	identity authz.Identity
	err      error
}

func (f fakeTokens) Authenticate(token string) (authz.Identity, error) {
	if f.err != nil {
		return authz.Identity{}, f.err
	}
	return f.identity, nil
}

func TestListBlogsHandler(t *testing.T) {
	reg := &fakeBlogRegistry{
		listFn: func(ctx context.Context, page blog.Page) ([]blog.Blog, int, error) {
			if page.Skip != 5 || page.Take != 2 {
				t.Fatalf("page not bound from query: %+v", page)
			}
			return []blog.Blog{{ID: 6, Name: "six"}, {ID: 7, Name: "seven"}}, 12, nil
		},
	}
	h := handlers.NewBlogsHandler(reg)
	r := setupRouter(http.MethodGet, "/blogs", h.ListBlogs)

	req := httptest.NewRequest(http.MethodGet, "/blogs?skip=5&take=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []blog.Blog `json:"items"`
		Total int         `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(resp.Items) != 2 || resp.Total != 12 {
		t.Fatalf("got %d items total=%d, want 2 items total=12", len(resp.Items), resp.Total)
	}
}

func TestGetBlogByIDHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		getFn      func(ctx context.Context, id int64) (blog.Blog, error)
		wantStatus int
	}{
		{
			name: "found",
			path: "/blogs/42",
			getFn: func(ctx context.Context, id int64) (blog.Blog, error) {
				if id != 42 {
					t.Fatalf("got id %d, want 42", id)
				}
				return blog.Blog{ID: 42, Name: "answers"}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing",
			path: "/blogs/99",
			getFn: func(ctx context.Context, id int64) (blog.Blog, error) {
				return blog.Blog{}, blog.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non numeric id",
			path:       "/blogs/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero id",
			path:       "/blogs/0",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := &fakeBlogRegistry{getByIDFn: tc.getFn}
			h := handlers.NewBlogsHandler(reg)
			r := setupRouter(http.MethodGet, "/blogs/:id", h.GetBlogByID)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestCreateBlogCallerPlumbing(t *testing.T) {
	caller := authz.Identity{UserID: 7, Username: "alice", Role: "writer"}

	reg := &fakeBlogRegistry{
		createFn: func(ctx context.Context, req blog.CreateBlogRequest, got authz.Identity) (blog.Blog, error) {
			if got != caller {
				t.Fatalf("caller not plumbed through: %+v", got)
			}
			return blog.Blog{ID: 1, Name: req.Name, UserID: got.UserID}, nil
		},
	}
	h := handlers.NewBlogsHandler(reg)

	authMW := middlewares.NewAuthMiddleware(fakeTokens{identity: caller})

	r := gin.New()
	r.POST("/blogs", authMW.RequireAuth(), h.CreateBlog)

	req := httptest.NewRequest(http.MethodPost, "/blogs", jsonBody(`{"name":"garden"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateBlogErrorMapping(t *testing.T) {
	caller := authz.Identity{UserID: 3, Username: "bob", Role: "writer"}

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "forbidden", svcErr: authz.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "missing", svcErr: blog.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := &fakeBlogRegistry{
				updateFn: func(ctx context.Context, id int64, req blog.UpdateBlogRequest, got authz.Identity) (blog.Blog, error) {
					return blog.Blog{}, tc.svcErr
				},
			}
			h := handlers.NewBlogsHandler(reg)

			authMW := middlewares.NewAuthMiddleware(fakeTokens{identity: caller})

			r := gin.New()
			r.PUT("/blogs/:id", authMW.RequireAuth(), h.UpdateBlog)

			req := httptest.NewRequest(http.MethodPut, "/blogs/5", jsonBody(`{"name":"renamed"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer whatever")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRemoveBlogReturnsSnapshot(t *testing.T) {
	caller := authz.Identity{UserID: 3, Username: "bob", Role: "moderator"}

	reg := &fakeBlogRegistry{
		removeFn: func(ctx context.Context, id int64, got authz.Identity) (blog.Blog, error) {
			return blog.Blog{ID: id, Name: "gone", UserID: 9}, nil
		},
	}
	h := handlers.NewBlogsHandler(reg)

	authMW := middlewares.NewAuthMiddleware(fakeTokens{identity: caller})

	r := gin.New()
	r.DELETE("/blogs/:id", authMW.RequireAuth(), h.RemoveBlog)

	req := httptest.NewRequest(http.MethodDelete, "/blogs/5", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var got blog.Blog
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.ID != 5 || got.Name != "gone" {
		t.Fatalf("snapshot not returned: %+v", got)
	}
}
