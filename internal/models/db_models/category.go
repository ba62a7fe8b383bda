package db_models

// Category is a spending category assigned to transactions,
// either by the advisor or by hand.
type Category struct {
	BaseModel
	Name string `gorm:"unique;not null"`
	Slug string `gorm:"uniqueIndex;not null"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID"`
}
