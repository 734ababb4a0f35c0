package models

import "time"

// Stone 钻石库存表，sku 为业务主键
type Stone struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                            // 主键
	SKU         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`                // 石头编号（大写）
	Lab         string    `gorm:"type:varchar(20);not null;default:'GLI';index" json:"lab"`        // 证书机构
	Shape       string    `gorm:"type:varchar(32);not null;default:'';index" json:"shape"`         // 形状
	Color       string    `gorm:"type:varchar(16);not null;default:''" json:"color"`               // 颜色
	Clarity     string    `gorm:"type:varchar(16);not null;default:''" json:"clarity"`             // 净度
	Cut         string    `gorm:"type:varchar(16);not null;default:''" json:"cut"`                 // 切工
	Carat       float64   `gorm:"not null;default:0;index" json:"carat"`                           // 克拉
	Length      float64   `gorm:"not null;default:0" json:"length"`                                // 长 mm
	Width       float64   `gorm:"not null;default:0" json:"width"`                                 // 宽 mm
	Height      float64   `gorm:"not null;default:0" json:"height"`                                // 高 mm
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0;index" json:"total_amount"` // 总价
	ImageURL    string    `gorm:"type:varchar(1000);not null;default:''" json:"image_url"`         // 图片链接
	Status      string    `gorm:"type:varchar(20);not null;default:'In Stock';index" json:"status"`
	Priority    int       `gorm:"not null;default:0;index" json:"priority"` // 目录排序，越大越靠前
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Stone) TableName() string {
	return "stones"
}
