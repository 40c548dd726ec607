package errors

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在（仓储层统一转换 gorm.ErrRecordNotFound）
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicate 唯一约束冲突
	ErrDuplicate = errors.New("记录已存在")
)

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Translate 将 gorm 错误转换为共享哨兵错误，其他错误原样返回
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
