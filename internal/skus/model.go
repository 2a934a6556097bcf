package skus

// SKU mirrors the gateway's sku resource.
type SKU struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}
