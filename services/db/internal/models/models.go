package models

type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name     string  `gorm:"not null"                      json:"name"`
	Category string  `gorm:"not null"                      json:"category"`
	Price    float64 `gorm:"not null;check:price >= 0"     json:"price"`
	Stock    int     `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	Username     string `gorm:"not null;index"             json:"username"`
	PasswordHash string `gorm:"not null"                   json:"-"`
	Active       bool   `gorm:"not null;default:true"      json:"active"`
}

type Order struct {
	ID         uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID     uint    `gorm:"index;not null"              json:"user_id"`
	ProductID  uint    `gorm:"not null"                    json:"product_id"`
	Quantity   int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalPrice float64 `gorm:"not null"                    json:"total_price"`
	Canceled   bool    `gorm:"not null;default:false"      json:"canceled"`
}
