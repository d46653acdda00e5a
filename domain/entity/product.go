package entity

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"` // minor currency units
	Description string    `json:"description"`
	ImageKey    string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProduct(id, name string, price int64, description, imageKey string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Description: description,
		ImageKey:    imageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
