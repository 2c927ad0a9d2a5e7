package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isForeignKeyError 判断是否为MySQL外键约束冲突错误
// MySQL错误码:
// - 1452: Cannot add or update a child row: a foreign key constraint fails
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	// 兼容检查:错误信息包含外键冲突描述
	return strings.Contains(err.Error(), "foreign key constraint fails")
}
