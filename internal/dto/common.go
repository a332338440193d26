// Package dto defines the request and response shapes of the HTTP API.
package dto

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationQuery is the shared page/page_size query binding.
type PaginationQuery struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// FeedParams narrows public feed listings.
type FeedParams struct {
	PaginationQuery
	Search string `form:"search"`
	Sort   string `form:"sort,default=latest" binding:"omitempty,oneof=latest popular"`
}
