package post

import (
	"errors"
	"time"
)

type Post struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	BlogID    int64     `json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("post not found")

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}

// with pointers if optional, it will be nil
type ListFilter struct {
	Name  *string
	Order SortOrder
	Skip  int
	Take  int
}

type CreatePostRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required"`
	BlogID  int64  `json:"blogId" binding:"required,min=1"`
}

// a partial update payload, nil fields keep their stored values.
type UpdatePostRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty"`
}
