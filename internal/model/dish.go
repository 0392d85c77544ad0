package model

// Dish is a menu item.
type Dish struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       int    `json:"price" yaml:"price"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
}

// DishID is the key function for dish collections.
func DishID(d Dish) string { return d.ID }

// DishInput holds the mutable fields of a dish.
type DishInput struct {
	Name        string
	Description string
	Price       int
	ImageURL    string
}

// Apply overwrites the mutable fields of d.
func (in DishInput) Apply(d *Dish) {
	d.Name = in.Name
	d.Description = in.Description
	d.Price = in.Price
	d.ImageURL = in.ImageURL
}
