package repository

import "gorm.io/gorm"

const maxPageSize = 500

// applyPagination 应用分页，pageSize <= 0 表示不分页，过大时截断
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
