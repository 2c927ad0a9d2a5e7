package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xuelin/bookshelf/internal/domain/person"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// personRepository 读者仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/person/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定错误，转换为业务错误（不泄漏GORM细节）
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository 创建读者仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewPersonRepository(db *gorm.DB) person.Repository {
	return &personRepository{db: db}
}

// Save 保存读者
// 说明：
// 1. ID为0时INSERT并回填自增ID，ID非0时整行UPDATE
// 2. nil实体在访问数据库之前就返回参数错误
// 3. 必填字段为空转换为数据完整性错误（MySQL的NOT NULL拦不住Go空字符串）
func (r *personRepository) Save(ctx context.Context, p *person.Person) error {
	if p == nil {
		return apperrors.ErrInvalidParams
	}

	// 持久化约束检查（对应NOT NULL约束）
	if err := p.Validate(); err != nil {
		return apperrors.DataIntegrity(err.Error())
	}

	// 1. 领域实体 → GORM模型
	model := &PersonModel{
		ID:       p.ID,
		FullName: p.FullName,
		Title:    p.Title,
		Age:      p.Age,
	}

	// 2. 主键为0时INSERT；非0时UPDATE并跳过created_at
	//    （model里的created_at是零值time.Time，严格模式MySQL会拒绝写入，
	//    该列保持插入时的值）
	db := getDB(ctx, r.db)
	var err error
	if model.ID == 0 {
		err = db.WithContext(ctx).Create(model).Error
	} else {
		err = db.WithContext(ctx).Omit("created_at").Save(model).Error
	}
	if err != nil {
		return apperrors.WrapDatabase(err, "保存读者失败")
	}

	// 3. 回填自增ID（GORM自动填充）
	p.ID = model.ID

	return nil
}

// FindByID 根据ID查找读者（普通读）
// 事务内调用时走事务DB，和其他方法保持同一套getDB纪律
func (r *personRepository) FindByID(ctx context.Context, id uint) (*person.Person, error) {
	var model PersonModel
	db := getDB(ctx, r.db)
	err := db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.UserNotFound(id)
		}
		return nil, apperrors.WrapDatabase(err, "查询读者失败")
	}

	return toPersonEntity(&model), nil
}

// FindByIDForUpdate 悲观写锁查询读者
// SELECT ... FOR UPDATE锁定行，锁持有到事务提交
// 说明：必须使用getDB(ctx)从context获取事务DB，锁才有事务边界
func (r *personRepository) FindByIDForUpdate(ctx context.Context, id uint) (*person.Person, error) {
	var model PersonModel
	db := getDB(ctx, r.db)
	err := db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.UserNotFound(id)
		}
		return nil, apperrors.WrapDatabase(err, "锁定读者失败")
	}

	return toPersonEntity(&model), nil
}

// DeleteByID 删除读者（硬删除）
func (r *personRepository) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}

	db := getDB(ctx, r.db)
	result := db.WithContext(ctx).Delete(&PersonModel{}, id)

	if result.Error != nil {
		return apperrors.WrapDatabase(result.Error, "删除读者失败")
	}

	// 没有行受影响说明记录不存在，存储状态未被改动
	if result.RowsAffected == 0 {
		return apperrors.EmptyResult("读者", id)
	}

	return nil
}

// Count 统计读者数量
func (r *personRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := getDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&PersonModel{}).Count(&count).Error; err != nil {
		return 0, apperrors.WrapDatabase(err, "统计读者数量失败")
	}
	return count, nil
}

// toPersonEntity GORM模型 → 领域实体
// 说明：隔离infrastructure层与domain层，这是Repository的重要职责之一
func toPersonEntity(model *PersonModel) *person.Person {
	return &person.Person{
		ID:       model.ID,
		FullName: model.FullName,
		Title:    model.Title,
		Age:      model.Age,
	}
}
