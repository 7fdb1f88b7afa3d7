package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyCategoryName = errors.New("category name is required")
)

// Category groups products on the menu.
type Category struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory validates and constructs a category.
func NewCategory(name, description, imageURL string) (*Category, error) {
	category := &Category{
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
	}
	if err := category.SetName(name); err != nil {
		return nil, err
	}
	return category, nil
}

// SetName trims and validates the category name.
func (c *Category) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategoryName
	}
	c.Name = name
	return nil
}
