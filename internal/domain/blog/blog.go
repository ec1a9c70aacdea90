package blog

import (
	"errors"
	"time"
)

type Blog struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("blog not found")

type CreateBlogRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// a partial update payload, nil fields keep their stored values.
type UpdateBlogRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// skip/take paging, defaults applied at the binding boundary.
type Page struct {
	Skip int `form:"skip" binding:"omitempty,min=0"`
	Take int `form:"take" binding:"omitempty,min=1,max=100"`
}

const (
	DefaultSkip = 0
	DefaultTake = 10
)

func (p Page) Normalized() Page {
	if p.Take <= 0 {
		p.Take = DefaultTake
	}
	if p.Skip < 0 {
		p.Skip = DefaultSkip
	}
	return p
}
