package models

import "time"

// QuoteRequest 访客询价单
type QuoteRequest struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	RequestNo   string             `gorm:"type:varchar(64);uniqueIndex;not null" json:"request_no"`
	Name        string             `gorm:"type:varchar(100);not null" json:"name"`
	Email       string             `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone       string             `gorm:"type:varchar(50);not null;default:''" json:"phone"`
	Message     string             `gorm:"type:text" json:"message"`
	Status      string             `gorm:"type:varchar(20);not null;default:'new';index" json:"status"` // new / contacted / closed
	TotalAmount Money              `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 提交时的报价合计
	ClientIP    string             `gorm:"type:varchar(64);not null;default:''" json:"-"`
	NotifiedAt  *time.Time         `json:"notified_at"`
	CreatedAt   time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Items       []QuoteRequestItem `gorm:"foreignKey:QuoteRequestID" json:"items,omitempty"`
}

// TableName 指定表名
func (QuoteRequest) TableName() string {
	return "quote_requests"
}

// QuoteRequestItem 询价单明细，保存提交时的石头快照
type QuoteRequestItem struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	QuoteRequestID uint    `gorm:"index;not null" json:"quote_request_id"`
	SKU            string  `gorm:"type:varchar(64);not null;index" json:"sku"`
	Shape          string  `gorm:"type:varchar(32);not null;default:''" json:"shape"`
	Carat          float64 `gorm:"not null;default:0" json:"carat"`
	Color          string  `gorm:"type:varchar(16);not null;default:''" json:"color"`
	Clarity        string  `gorm:"type:varchar(16);not null;default:''" json:"clarity"`
	Lab            string  `gorm:"type:varchar(20);not null;default:''" json:"lab"`
	TotalAmount    Money   `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
}

// TableName 指定表名
func (QuoteRequestItem) TableName() string {
	return "quote_request_items"
}
