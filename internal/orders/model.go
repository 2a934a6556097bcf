package orders

import "time"

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "New"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order mirrors the gateway's order resource. Total is a snapshot computed at
// creation time and is never recomputed after SKU price changes.
type Order struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	Country   string      `json:"country"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type OrderItem struct {
	SKUID    int64 `json:"skuId"`
	Quantity int   `json:"qty"`
}
