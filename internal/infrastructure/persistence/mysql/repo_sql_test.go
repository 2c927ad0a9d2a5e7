package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xuelin/bookshelf/internal/domain/book"
	"github.com/xuelin/bookshelf/internal/domain/person"
)

// 说明：DryRun模式只生成SQL不执行，用来校验仓储拼出的语句，
// 不需要真实的MySQL：
// 1. 更新只写可变列（created_at是零值time.Time，写进严格模式MySQL会报错）
// 2. 悲观锁读生成FOR UPDATE
// 3. 事务内的操作落在事务DB上而不是默认DB上

// newDryRunDB 创建DryRun模式的GORM实例（不建立真实连接）
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "bookshelf:bookshelf@tcp(127.0.0.1:3306)/bookshelf_dryrun?charset=utf8mb4&parseTime=True&loc=Local",
		SkipInitializeWithVersion: true, // 不连库探测版本
	}), &gorm.Config{
		DryRun: true,
		// DryRun不执行SQL，但默认事务的BEGIN仍会尝试建立真实连接，跳过
		SkipDefaultTransaction: true,
		// gorm.Open默认会Ping真实数据库，DryRun测试不需要连接
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

// captureSQL 注册回调，捕获经过该DB的全部增删改查语句
func captureSQL(t *testing.T, db *gorm.DB) *[]string {
	t.Helper()
	sqls := &[]string{}
	capture := func(tx *gorm.DB) {
		*sqls = append(*sqls, tx.Statement.SQL.String())
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("capture_create", capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("capture_update", capture))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_query", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("capture_delete", capture))
	return sqls
}

// TestPersonSaveSQL 校验读者保存语句
func TestPersonSaveSQL(t *testing.T) {
	ctx := context.Background()

	t.Run("更新只写可变列", func(t *testing.T) {
		db := newDryRunDB(t)
		sqls := captureSQL(t, db)
		repo := NewPersonRepository(db)

		p := &person.Person{ID: 1, FullName: "Test Test", Title: "reader123", Age: 123}
		require.NoError(t, repo.Save(ctx, p))

		require.Len(t, *sqls, 1)
		sql := (*sqls)[0]
		assert.Contains(t, sql, "UPDATE `person`")
		assert.Contains(t, sql, "`full_name`")
		assert.Contains(t, sql, "`title`")
		assert.Contains(t, sql, "`age`")
		assert.Contains(t, sql, "`updated_at`")
		assert.NotContains(t, sql, "created_at", "更新不应该触碰created_at")
	})

	t.Run("插入包含created_at", func(t *testing.T) {
		db := newDryRunDB(t)
		sqls := captureSQL(t, db)
		repo := NewPersonRepository(db)

		require.NoError(t, repo.Save(ctx, &person.Person{FullName: "张三", Title: "学生", Age: 20}))

		require.Len(t, *sqls, 1)
		sql := (*sqls)[0]
		assert.Contains(t, sql, "INSERT INTO `person`")
		assert.Contains(t, sql, "created_at")
	})
}

// TestBookSaveSQL 校验图书保存语句
func TestBookSaveSQL(t *testing.T) {
	ctx := context.Background()

	t.Run("更新只写可变列", func(t *testing.T) {
		db := newDryRunDB(t)
		sqls := captureSQL(t, db)
		repo := NewBookRepository(db)

		b := &book.Book{ID: 1, PersonID: 1, Title: "111test", Author: "111Test", PageCount: 1111}
		require.NoError(t, repo.Save(ctx, b))

		require.Len(t, *sqls, 1)
		sql := (*sqls)[0]
		assert.Contains(t, sql, "UPDATE `book`")
		assert.NotContains(t, sql, "created_at", "更新不应该触碰created_at")
	})

	t.Run("插入包含created_at", func(t *testing.T) {
		db := newDryRunDB(t)
		sqls := captureSQL(t, db)
		repo := NewBookRepository(db)

		require.NoError(t, repo.Save(ctx, &book.Book{PersonID: 1, Title: "test123", Author: "Test Author123", PageCount: 111}))

		require.Len(t, *sqls, 1)
		assert.Contains(t, (*sqls)[0], "INSERT INTO `book`")
		assert.Contains(t, (*sqls)[0], "created_at")
	})
}

// TestReadsHonorTransactionDB 校验事务内的读落在事务DB上
// 事务DB通过context传递，FindByID和FindByIDForUpdate都必须走getDB
func TestReadsHonorTransactionDB(t *testing.T) {
	ctx := context.Background()

	baseDB := newDryRunDB(t)
	baseSQLs := captureSQL(t, baseDB)
	txDB := newDryRunDB(t)
	txSQLs := captureSQL(t, txDB)

	repo := NewPersonRepository(baseDB)
	txCtx := context.WithValue(ctx, txKey{}, txDB)

	_, err := repo.FindByID(txCtx, 1)
	require.NoError(t, err)
	_, err = repo.FindByIDForUpdate(txCtx, 1)
	require.NoError(t, err)

	assert.Empty(t, *baseSQLs, "事务内的读不应该落在默认DB上")
	require.Len(t, *txSQLs, 2)
	assert.Contains(t, (*txSQLs)[0], "SELECT")
	assert.NotContains(t, (*txSQLs)[0], "FOR UPDATE", "普通读不加锁")
	assert.Contains(t, (*txSQLs)[1], "FOR UPDATE", "悲观锁读应该生成FOR UPDATE")
}
