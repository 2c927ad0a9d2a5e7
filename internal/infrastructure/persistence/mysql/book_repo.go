package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xuelin/bookshelf/internal/domain/book"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定错误(如外键缺失),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Save 保存图书
func (r *bookRepository) Save(ctx context.Context, b *book.Book) error {
	if b == nil {
		return apperrors.ErrInvalidParams
	}

	// 持久化约束检查（所属读者必填）
	if err := b.Validate(); err != nil {
		return apperrors.DataIntegrity(err.Error())
	}

	model := &BookModel{
		ID:        b.ID,
		PersonID:  b.PersonID,
		Title:     b.Title,
		Author:    b.Author,
		PageCount: b.PageCount,
	}

	// 主键为0时INSERT；非0时UPDATE并跳过created_at
	// （零值time.Time会被严格模式MySQL拒绝，该列保持插入时的值）
	db := getDB(ctx, r.db)
	var err error
	if model.ID == 0 {
		err = db.WithContext(ctx).Create(model).Error
	} else {
		err = db.WithContext(ctx).Omit("created_at").Save(model).Error
	}
	if err != nil {
		// 外键约束冲突（所属读者不存在）转换为数据完整性错误
		if isForeignKeyError(err) {
			return apperrors.DataIntegrity("所属读者不存在")
		}
		return apperrors.WrapDatabase(err, "保存图书失败")
	}

	b.ID = model.ID

	return nil
}

// FindByID 根据ID查找图书（普通读）
// 事务内调用时走事务DB，和其他方法保持同一套getDB纪律
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := getDB(ctx, r.db)
	err := db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BookNotFound(id)
		}
		return nil, apperrors.WrapDatabase(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByIDForUpdate 悲观写锁查询图书
// SELECT ... FOR UPDATE锁定行,必须在事务内调用
func (r *bookRepository) FindByIDForUpdate(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := getDB(ctx, r.db)
	err := db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BookNotFound(id)
		}
		return nil, apperrors.WrapDatabase(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// FindAll 查询全部图书
// 顺序由存储决定，不显式排序
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	db := getDB(ctx, r.db)
	if err := db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, apperrors.WrapDatabase(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// DeleteByID 删除图书（硬删除）
func (r *bookRepository) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}

	db := getDB(ctx, r.db)
	result := db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.WrapDatabase(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return apperrors.EmptyResult("图书", id)
	}

	return nil
}

// DeleteByPersonID 删除指定读者的全部图书
// 级联删除用：删除0行不算错误（读者可能没有图书）
func (r *bookRepository) DeleteByPersonID(ctx context.Context, personID uint) error {
	if personID == 0 {
		return apperrors.ErrInvalidParams
	}

	db := getDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("person_id = ?", personID).Delete(&BookModel{}).Error; err != nil {
		return apperrors.WrapDatabase(err, "删除读者图书失败")
	}

	return nil
}

// Count 统计图书数量
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := getDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&BookModel{}).Count(&count).Error; err != nil {
		return 0, apperrors.WrapDatabase(err, "统计图书数量失败")
	}
	return count, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		PersonID:  model.PersonID,
		Title:     model.Title,
		Author:    model.Author,
		PageCount: model.PageCount,
	}
}
