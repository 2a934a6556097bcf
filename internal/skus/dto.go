package skus

type CreateSKURequest struct {
	Name  string  `json:"name" validate:"required"`
	Code  string  `json:"code" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type UpdateSKURequest struct {
	Name   string  `json:"name" validate:"required"`
	Code   string  `json:"code" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Active bool    `json:"active"`
}

type ListSKUsRequest struct {
	Status StatusFilter `json:"status"`
	Search string       `json:"search"`
}
