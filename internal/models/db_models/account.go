package db_models

type Account struct {
	BaseModel
	Name  string
	Email string `gorm:"unique"`

	BankAccounts []BankAccount `gorm:"foreignKey:AccountID"`
}
