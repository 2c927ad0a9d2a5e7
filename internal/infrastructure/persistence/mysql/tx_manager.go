package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的键（非导出类型，避免和其他包的键冲突）
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 说明:
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
// 3. 通过context.WithValue传递事务DB,Repository的getDB方法从context提取
//
// 使用示例（删除读者的级联删除）:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 删除该读者的全部图书
//	    if err := bookRepo.DeleteByPersonID(ctx, personID); err != nil {
//	        return err // 自动回滚
//	    }
//	    // 2. 删除读者本行
//	    return personRepo.DeleteByID(ctx, personID) // nil则提交,非nil则回滚
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// getDB 从context获取事务DB,没有事务时返回默认DB
// 说明：悲观锁（SELECT ... FOR UPDATE）只有在事务DB上才有意义
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
