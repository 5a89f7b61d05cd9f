package dto

import "github.com/spec-kit/listing-admin/internal/service"

// Response is the success envelope shared by every endpoint.
type Response struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Pagination *service.PageInfo `json:"pagination,omitempty"`
}

// ErrorResponse is the failure envelope. Error carries the cause outside production only.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Page wraps a list with its pagination block.
func Page(data any, page service.PageInfo) Response {
	return Response{Success: true, Data: data, Pagination: &page}
}
