package book

import (
	"context"

	"github.com/xuelin/bookshelf/internal/domain/book"
	"github.com/xuelin/bookshelf/internal/domain/person"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
	"github.com/xuelin/bookshelf/pkg/metrics"
)

// UseCase 图书用例
// 设计说明:
// 1. 创建图书前检查所属读者存在（跨聚合检查放在应用层，
//    避免book领域包依赖person领域包）
// 2. 其余流程直接委托图书领域服务
type UseCase struct {
	bookService   book.Service
	personService person.Service
}

// NewUseCase 创建图书用例
func NewUseCase(bookService book.Service, personService person.Service) *UseCase {
	return &UseCase{
		bookService:   bookService,
		personService: personService,
	}
}

// CreateBook 创建图书
// 不变式：图书创建时必须指向已存在的读者。
// 读者缺失属于数据完整性约束冲突（外键缺失），
// 所以这里把读者查询的NotFound转换为数据完整性错误
func (uc *UseCase) CreateBook(ctx context.Context, dto *BookDto) (*BookDto, error) {
	if dto == nil {
		return nil, apperrors.ErrInvalidParams
	}

	// 所属读者存在性检查
	if _, err := uc.personService.GetUserByID(ctx, dto.UserID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.DataIntegrity("所属读者不存在")
		}
		return nil, err
	}

	created, err := uc.bookService.CreateBook(ctx, BookDtoToBook(dto))
	record("create", err)
	if err != nil {
		return nil, err
	}

	return BookToBookDto(created), nil
}

// UpdateBook 更新图书
// dto.ID必须指向已存在的图书；覆盖Title、Author、PageCount，所属读者保持不变
func (uc *UseCase) UpdateBook(ctx context.Context, dto *BookDto) (*BookDto, error) {
	if dto == nil {
		return nil, apperrors.ErrInvalidParams
	}

	updated, err := uc.bookService.UpdateBook(ctx, BookDtoToBook(dto))
	record("update", err)
	if err != nil {
		return nil, err
	}

	return BookToBookDto(updated), nil
}

// GetBookByID 根据ID获取图书
func (uc *UseCase) GetBookByID(ctx context.Context, id uint) (*BookDto, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	record("get", err)
	if err != nil {
		return nil, err
	}
	return BookToBookDto(b), nil
}

// DeleteBookByID 删除图书
// 只删除该图书本身，不影响其读者
func (uc *UseCase) DeleteBookByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}
	err := uc.bookService.DeleteBookByID(ctx, id)
	record("delete", err)
	return err
}

// GetAllBooks 获取全部图书
func (uc *UseCase) GetAllBooks(ctx context.Context) ([]*BookDto, error) {
	books, err := uc.bookService.GetAllBooks(ctx)
	record("list", err)
	if err != nil {
		return nil, err
	}
	return BooksToBookDtos(books), nil
}

// record 记录图书操作指标
func record(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.EntityOperationsTotal, map[string]string{
		"entity":    "book",
		"operation": operation,
		"result":    result,
	})
}
