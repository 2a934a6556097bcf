package orders

type CreateOrderRequest struct {
	Name    string                   `json:"name" validate:"required"`
	Email   string                   `json:"email" validate:"required,email"`
	Phone   string                   `json:"phone" validate:"required,len=10,numeric"`
	Address string                   `json:"address"`
	City    string                   `json:"city"`
	Country string                   `json:"country"`
	Items   []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderItemRequest struct {
	SKUID    int64 `json:"skuId" validate:"required,gt=0"`
	Quantity int   `json:"qty" validate:"required,gte=1"`
}

type BulkUpdateRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=New Delivered Cancelled"`
}

// ListResponse carries the visible page plus the view metadata the console
// needs to render pagination and the staged-confirmation dialog.
type ListResponse struct {
	Orders     []Order          `json:"orders"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
	Selected   []int64          `json:"selected"`
	Staged     *PendingMutation `json:"staged,omitempty"`
}
