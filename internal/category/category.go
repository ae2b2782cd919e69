package category

import (
	"time"

	categoryDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/category"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Color: c.Color,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
}
