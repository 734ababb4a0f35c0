package models

import "time"

// ImportBatch 表格导入批次记录
type ImportBatch struct {
	ID                 uint        `gorm:"primarykey" json:"id"`
	BatchNo            string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"batch_no"`
	AdminID            uint        `gorm:"index;not null" json:"admin_id"`
	Source             string      `gorm:"type:varchar(20);not null" json:"source"` // upload / rows / cli
	Filename           string      `gorm:"type:varchar(255);not null;default:''" json:"filename"`
	TotalRows          int         `gorm:"not null;default:0" json:"total_rows"`
	RejectedMissingSKU int         `gorm:"not null;default:0" json:"rejected_missing_sku"`
	Duplicates         int         `gorm:"not null;default:0" json:"duplicates"`
	Inserted           int         `gorm:"not null;default:0" json:"inserted"`
	Updated            int         `gorm:"not null;default:0" json:"updated"`
	Skipped            int         `gorm:"not null;default:0" json:"skipped"`
	Decision           string      `gorm:"type:varchar(20);not null;default:''" json:"decision"`    // overwrite / add_new_only / cancel
	Outcome            string      `gorm:"type:varchar(20);not null;index" json:"outcome"`          // completed / abandoned / failed
	ConflictSKUs       StringArray `gorm:"type:json" json:"conflict_skus"`                          // 与库存冲突的 sku
	DuplicateSKUs      StringArray `gorm:"type:json" json:"duplicate_skus"`                         // 批次内重复的 sku
	ErrorMessage       string      `gorm:"type:text" json:"error_message"`
	CreatedAt          time.Time   `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (ImportBatch) TableName() string {
	return "import_batches"
}
