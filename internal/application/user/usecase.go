package user

import (
	"context"

	"github.com/xuelin/bookshelf/internal/domain/book"
	"github.com/xuelin/bookshelf/internal/domain/person"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
	"github.com/xuelin/bookshelf/pkg/metrics"
)

// UseCase 读者用例
// 设计说明:
// 1. 应用层负责用例编排：DTO与实体的映射 + 跨聚合的流程
// 2. 单聚合的业务流程（锁纪律、存在性检查）由领域服务负责
// 3. 删除读者的级联删除在这里编排：同一事务内先删图书再删读者
type UseCase struct {
	personService person.Service
	bookService   book.Service
	tx            person.TxManager
}

// NewUseCase 创建读者用例
func NewUseCase(personService person.Service, bookService book.Service, tx person.TxManager) *UseCase {
	return &UseCase{
		personService: personService,
		bookService:   bookService,
		tx:            tx,
	}
}

// CreateUser 创建读者
// 流程：DTO → 实体（ID清空）→ 持久化 → 实体 → DTO
func (uc *UseCase) CreateUser(ctx context.Context, dto *UserDto) (*UserDto, error) {
	if dto == nil {
		return nil, apperrors.ErrInvalidParams
	}

	created, err := uc.personService.CreateUser(ctx, UserDtoToPerson(dto))
	record("create", err)
	if err != nil {
		return nil, err
	}

	return PersonToUserDto(created), nil
}

// UpdateUser 更新读者
// dto.ID必须指向已存在的读者；领域服务在事务内用悲观写锁完成更新
func (uc *UseCase) UpdateUser(ctx context.Context, dto *UserDto) (*UserDto, error) {
	if dto == nil {
		return nil, apperrors.ErrInvalidParams
	}

	updated, err := uc.personService.UpdateUser(ctx, UserDtoToPerson(dto))
	record("update", err)
	if err != nil {
		return nil, err
	}

	return PersonToUserDto(updated), nil
}

// GetUserByID 根据ID获取读者
func (uc *UseCase) GetUserByID(ctx context.Context, id uint) (*UserDto, error) {
	p, err := uc.personService.GetUserByID(ctx, id)
	record("get", err)
	if err != nil {
		return nil, err
	}
	return PersonToUserDto(p), nil
}

// DeleteUserByID 删除读者（级联删除其全部图书）
// 流程（单一事务）:
// 1. 删除该读者拥有的全部图书（读者没有图书时删0行，不算错误）
// 2. 删除读者本行；读者不存在返回EmptyResult并回滚，存储状态不变
func (uc *UseCase) DeleteUserByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}

	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.bookService.DeleteBooksByOwner(txCtx, id); err != nil {
			return err
		}
		return uc.personService.DeleteUserByID(txCtx, id)
	})
	record("delete", err)
	if err == nil {
		metrics.IncCounter(metrics.CascadeDeletesTotal)
	}
	return err
}

// record 记录读者操作指标
func record(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.EntityOperationsTotal, map[string]string{
		"entity":    "user",
		"operation": operation,
		"result":    result,
	})
}
