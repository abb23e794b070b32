package entity

// Category representa una categoría de productos del marketplace.
type Category struct {
	ID   string
	Name string
}
