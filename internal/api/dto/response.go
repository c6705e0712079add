package dto

// Envelope is the uniform response shape. Optional sections are omitted when
// empty so success-only responses stay minimal.
type Envelope struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message,omitempty"`
	Data        interface{} `json:"data,omitempty"`
	Pagination  *Pagination `json:"pagination,omitempty"`
	UnreadCount *int64      `json:"unreadCount,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes page metadata from an offset-based query.
func NewPagination(page, limit int, total int64) *Pagination {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a message, optionally with data.
func OKMessage(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Page wraps a list response with pagination metadata.
func Page(data interface{}, pagination *Pagination) Envelope {
	return Envelope{Success: true, Data: data, Pagination: pagination}
}
