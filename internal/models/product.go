package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	Name        string             `json:"name" db:"name"`
	Description string             `json:"description" db:"description"`
	Category    string             `json:"category" db:"category"`
	Image       string             `json:"image" db:"image"`
	Images      ImageDerivativeSet `json:"images" db:"images"`
	NewPrice    decimal.Decimal    `json:"new_price" db:"new_price"`
	OldPrice    decimal.Decimal    `json:"old_price" db:"old_price"`
	Available   bool               `json:"available" db:"available"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}
