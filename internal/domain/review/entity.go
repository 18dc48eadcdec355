// internal/domain/review/entity.go
package review

import "time"

// Review is a user's comment and rating on a product
type Review struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID string    `gorm:"not null;size:64;index" json:"product_id"`
	UserID    string    `gorm:"not null;size:64;index" json:"user_id"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Rating    int       `gorm:"not null;default:0" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}
