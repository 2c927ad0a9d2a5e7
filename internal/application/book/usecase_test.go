package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuelin/bookshelf/internal/domain/book"
	"github.com/xuelin/bookshelf/internal/domain/person"
	"github.com/xuelin/bookshelf/internal/testutil"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// 说明：图书用例测试，重点验证应用层的外键检查
// （创建图书时所属读者必须存在）。

// fixture 完整依赖链
type fixture struct {
	useCase       *UseCase
	personService person.Service
}

func newFixture() *fixture {
	store := testutil.NewMemStore()
	personService := person.NewService(testutil.NewPersonRepository(store), store)
	bookService := book.NewService(testutil.NewBookRepository(store), store)

	return &fixture{
		useCase:       NewUseCase(bookService, personService),
		personService: personService,
	}
}

// createOwner 准备一个读者作为图书的所属方
func (f *fixture) createOwner(t *testing.T) uint {
	t.Helper()
	owner, err := f.personService.CreateUser(context.Background(),
		person.NewPerson("书主", "读者", 30))
	require.NoError(t, err)
	return owner.ID
}

// TestCreateBookOwnerCheck 测试创建图书的所属读者检查
func TestCreateBookOwnerCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("所属读者存在时创建成功", func(t *testing.T) {
		f := newFixture()
		ownerID := f.createOwner(t)

		created, err := f.useCase.CreateBook(ctx, &BookDto{
			UserID: ownerID, Title: "test123", Author: "Test Author123", PageCount: 111,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, ownerID, created.UserID)
	})

	t.Run("所属读者不存在时返回数据完整性错误", func(t *testing.T) {
		f := newFixture()

		_, err := f.useCase.CreateBook(ctx, &BookDto{
			UserID: 42, Title: "无主图书", Author: "佚名", PageCount: 10,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsDataIntegrity(err),
			"读者缺失应该是数据完整性错误而不是NotFound")
	})

	t.Run("UserID为0时返回参数错误", func(t *testing.T) {
		f := newFixture()

		_, err := f.useCase.CreateBook(ctx, &BookDto{
			Title: "无主图书", Author: "佚名", PageCount: 10,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
	})
}

// TestBookQueries 测试图书查询
func TestBookQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := f.createOwner(t)

	first, err := f.useCase.CreateBook(ctx, &BookDto{
		UserID: ownerID, Title: "书A", Author: "作者A", PageCount: 100,
	})
	require.NoError(t, err)
	_, err = f.useCase.CreateBook(ctx, &BookDto{
		UserID: ownerID, Title: "书B", Author: "作者B", PageCount: 200,
	})
	require.NoError(t, err)

	t.Run("按ID查询", func(t *testing.T) {
		got, err := f.useCase.GetBookByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "书A", got.Title)
	})

	t.Run("查询不存在的图书", func(t *testing.T) {
		_, err := f.useCase.GetBookByID(ctx, 11)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, "No book with id: 11", apperrors.GetAppError(err).Message)
	})

	t.Run("查询全部", func(t *testing.T) {
		books, err := f.useCase.GetAllBooks(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})
}

// TestUpdateBookKeepsOwner 测试更新图书不改变所属读者
func TestUpdateBookKeepsOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := f.createOwner(t)

	created, err := f.useCase.CreateBook(ctx, &BookDto{
		UserID: ownerID, Title: "test123", Author: "Test Author123", PageCount: 111,
	})
	require.NoError(t, err)

	updated, err := f.useCase.UpdateBook(ctx, &BookDto{
		ID:        created.ID,
		UserID:    99, // 应该被忽略
		Title:     "111test",
		Author:    "111Test",
		PageCount: 1111,
	})
	require.NoError(t, err)
	assert.Equal(t, "111test", updated.Title)
	assert.Equal(t, "111Test", updated.Author)
	assert.Equal(t, 1111, updated.PageCount)
	assert.Equal(t, ownerID, updated.UserID, "所属读者应该保持不变")
}

// TestDeleteBook 测试删除图书不影响其读者
func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := f.createOwner(t)

	created, err := f.useCase.CreateBook(ctx, &BookDto{
		UserID: ownerID, Title: "待删图书", Author: "作者", PageCount: 50,
	})
	require.NoError(t, err)

	require.NoError(t, f.useCase.DeleteBookByID(ctx, created.ID))

	// 读者仍然存在
	_, err = f.personService.GetUserByID(ctx, ownerID)
	assert.NoError(t, err, "删除图书不应该影响其读者")

	// 重复删除返回EmptyResult
	err = f.useCase.DeleteBookByID(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsEmptyResult(err))
}
