package person

import (
	"context"

	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// Service 读者领域服务接口
// 设计说明：
// 1. 封装单聚合的业务流程：存在性检查、更新流程的锁纪律
// 2. 跨聚合的编排（删除读者时级联删除图书）在应用层完成
// 3. 不依赖具体的Repository实现（依赖倒置）
type Service interface {
	// CreateUser 创建读者
	// 入参的ID会被清空，由存储层分配新ID
	CreateUser(ctx context.Context, p *Person) (*Person, error)

	// UpdateUser 更新读者
	// 流程（锁纪律）：
	// 1. 在事务内用悲观写锁按ID取出现有记录
	// 2. 不存在则返回NotFound（"No user with id: <id>"），不做任何写入
	// 3. 在锁定的副本上覆盖可变字段（FullName、Title、Age）
	// 4. 保存，锁在事务提交时释放
	// 并发更新同一ID的两个调用会被串行化，后提交者能看到先提交者的写入
	UpdateUser(ctx context.Context, p *Person) (*Person, error)

	// GetUserByID 根据ID获取读者（普通读）
	// 不存在时返回NotFound（"No user with id: <id>"）
	GetUserByID(ctx context.Context, id uint) (*Person, error)

	// DeleteUserByID 删除读者本行
	// 注意：只删person行；图书的级联删除由应用层在同一事务内编排
	// 记录不存在返回EmptyResult错误
	DeleteUserByID(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
	tx   TxManager
}

// NewService 创建读者领域服务
func NewService(repo Repository, tx TxManager) Service {
	return &service{repo: repo, tx: tx}
}

// CreateUser 创建读者
func (s *service) CreateUser(ctx context.Context, p *Person) (*Person, error) {
	if p == nil {
		return nil, apperrors.ErrInvalidParams
	}

	// 创建时忽略调用方传入的ID，由存储层分配
	p.ID = 0

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateUser 更新读者
func (s *service) UpdateUser(ctx context.Context, p *Person) (*Person, error) {
	if p == nil || p.ID == 0 {
		return nil, apperrors.ErrInvalidParams
	}

	var updated *Person
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 悲观写锁取出现有记录（串行化并发更新）
		existing, err := s.repo.FindByIDForUpdate(txCtx, p.ID)
		if err != nil {
			return err // NotFound在任何写入之前返回
		}

		// 2. 在锁定的副本上覆盖可变字段，身份保持不变
		existing.Overwrite(p)

		// 3. 保存，事务提交时释放锁
		if err := s.repo.Save(txCtx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetUserByID 根据ID获取读者
func (s *service) GetUserByID(ctx context.Context, id uint) (*Person, error) {
	if id == 0 {
		return nil, apperrors.ErrInvalidParams
	}
	return s.repo.FindByID(ctx, id)
}

// DeleteUserByID 删除读者
func (s *service) DeleteUserByID(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}
