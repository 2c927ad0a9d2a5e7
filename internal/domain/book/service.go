package book

import (
	"context"

	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// Service 图书领域服务接口
// 设计说明：
// 1. 封装单聚合的业务流程；所属读者的存在性检查由应用层
//    借助读者服务完成（避免领域包互相依赖）
// 2. 更新流程与读者服务遵循同一套锁纪律
type Service interface {
	// CreateBook 创建图书
	// 入参的ID会被清空，由存储层分配新ID
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// UpdateBook 更新图书
	// 事务内悲观写锁取出现有记录；不存在返回NotFound（"No book with id: <id>"）；
	// 覆盖Title、Author、PageCount，所属读者保持不变；保存后提交释放锁
	UpdateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBookByID 根据ID获取图书
	// 不存在时返回NotFound（"No book with id: <id>"）
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// DeleteBookByID 删除图书
	// 记录不存在返回EmptyResult错误；删除图书不影响其读者
	DeleteBookByID(ctx context.Context, id uint) error

	// GetAllBooks 获取全部图书（存储顺序）
	GetAllBooks(ctx context.Context) ([]*Book, error)

	// DeleteBooksByOwner 删除指定读者的全部图书
	// 供应用层在删除读者的事务内做级联删除
	DeleteBooksByOwner(ctx context.Context, personID uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
	tx   TxManager
}

// NewService 创建图书领域服务
func NewService(repo Repository, tx TxManager) Service {
	return &service{repo: repo, tx: tx}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	if b == nil {
		return nil, apperrors.ErrInvalidParams
	}

	b.ID = 0

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, b *Book) (*Book, error) {
	if b == nil || b.ID == 0 {
		return nil, apperrors.ErrInvalidParams
	}

	var updated *Book
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 悲观写锁取出现有记录
		existing, err := s.repo.FindByIDForUpdate(txCtx, b.ID)
		if err != nil {
			return err // NotFound在任何写入之前返回
		}

		// 2. 覆盖可变字段，PersonID保持原值
		existing.Overwrite(b)

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

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	if id == 0 {
		return nil, apperrors.ErrInvalidParams
	}
	return s.repo.FindByID(ctx, id)
}

// DeleteBookByID 删除图书
func (s *service) DeleteBookByID(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}

// GetAllBooks 获取全部图书
func (s *service) GetAllBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// DeleteBooksByOwner 删除指定读者的全部图书
func (s *service) DeleteBooksByOwner(ctx context.Context, personID uint) error {
	if personID == 0 {
		return apperrors.ErrInvalidParams
	}
	return s.repo.DeleteByPersonID(ctx, personID)
}
