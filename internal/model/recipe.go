package model

// Recipe is a single row of the recipes table. ID is assigned by the store on
// insert and never changes afterwards.
type Recipe struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:255;not null;index" json:"name"`
	CookingTime int    `gorm:"not null;index" json:"cooking_time"`
	Ingredients string `gorm:"not null" json:"ingredients"`
	Description string `gorm:"type:text;not null" json:"description"`
	ViewCount   int    `gorm:"not null;default:0" json:"view_count"`
}

// TableName pins the table name so it does not depend on gorm's naming strategy
func (Recipe) TableName() string {
	return "recipes"
}
