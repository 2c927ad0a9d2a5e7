package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// 说明：与person包同一套测试手法——内存假仓储+假事务管理器。
// 所属读者的存在性检查在应用层，所以这里的假仓储不校验外键。

// fakeRepo 内存假仓储
type fakeRepo struct {
	books  map[uint]Book
	nextID uint

	forUpdateCalls int
	saveCalls      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: make(map[uint]Book), nextID: 1}
}

func (r *fakeRepo) Save(ctx context.Context, b *Book) error {
	if b == nil {
		return apperrors.ErrInvalidParams
	}
	if err := b.Validate(); err != nil {
		return apperrors.DataIntegrity(err.Error())
	}
	r.saveCalls++
	if b.ID == 0 {
		b.ID = r.nextID
		r.nextID++
	}
	r.books[b.ID] = *b
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, apperrors.BookNotFound(id)
	}
	return &b, nil
}

func (r *fakeRepo) FindByIDForUpdate(ctx context.Context, id uint) (*Book, error) {
	r.forUpdateCalls++
	return r.FindByID(ctx, id)
}

func (r *fakeRepo) FindAll(ctx context.Context) ([]*Book, error) {
	books := make([]*Book, 0, len(r.books))
	for id := range r.books {
		b := r.books[id]
		books = append(books, &b)
	}
	return books, nil
}

func (r *fakeRepo) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}
	if _, ok := r.books[id]; !ok {
		return apperrors.EmptyResult("图书", id)
	}
	delete(r.books, id)
	return nil
}

func (r *fakeRepo) DeleteByPersonID(ctx context.Context, personID uint) error {
	if personID == 0 {
		return apperrors.ErrInvalidParams
	}
	for id, b := range r.books {
		if b.PersonID == personID {
			delete(r.books, id)
		}
	}
	return nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.books)), nil
}

// fakeTx 假事务管理器
type fakeTx struct {
	calls int
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// TestCreateBook 测试创建图书
func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("正常创建", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, &fakeTx{})

		created, err := svc.CreateBook(ctx, NewBook(1, "test123", "Test Author123", 111))
		require.NoError(t, err)

		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, uint(1), created.PersonID)
		assert.Equal(t, "test123", created.Title)
		assert.Equal(t, "Test Author123", created.Author)
		assert.Equal(t, 111, created.PageCount)
	})

	t.Run("nil入参返回参数错误", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeTx{})

		_, err := svc.CreateBook(ctx, nil)
		assert.True(t, apperrors.IsInvalidParams(err))
	})

	t.Run("缺少所属读者返回数据完整性错误", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeTx{})

		_, err := svc.CreateBook(ctx, NewBook(0, "无主图书", "佚名", 100))
		assert.True(t, apperrors.IsDataIntegrity(err))
	})
}

// TestGetBookByID 测试查询图书
func TestGetBookByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, &fakeTx{})

	created, err := svc.CreateBook(ctx, NewBook(1, "Go语言实战", "William", 300))
	require.NoError(t, err)

	t.Run("存在的图书", func(t *testing.T) {
		got, err := svc.GetBookByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Title, got.Title)
	})

	t.Run("不存在的图书", func(t *testing.T) {
		_, err := svc.GetBookByID(ctx, 11)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, "No book with id: 11", apperrors.GetAppError(err).Message,
			"NotFound的message格式是对外契约")
	})
}

// TestUpdateBook 测试更新图书（锁纪律+所属读者不变）
func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("正常更新且所属读者不变", func(t *testing.T) {
		repo := newFakeRepo()
		tx := &fakeTx{}
		svc := NewService(repo, tx)

		created, err := svc.CreateBook(ctx, NewBook(1, "test123", "Test Author123", 111))
		require.NoError(t, err)

		// patch携带了不同的PersonID，更新时应该被忽略
		patch := NewBook(9, "111test", "111Test", 1111)
		patch.ID = created.ID
		updated, err := svc.UpdateBook(ctx, patch)
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "111test", updated.Title)
		assert.Equal(t, "111Test", updated.Author)
		assert.Equal(t, 1111, updated.PageCount)
		assert.Equal(t, uint(1), updated.PersonID, "更新不应该改变所属读者")

		assert.Equal(t, 1, tx.calls, "更新应该开启事务")
		assert.Equal(t, 1, repo.forUpdateCalls, "更新应该通过悲观锁路径读取")
	})

	t.Run("不存在的图书返回NotFound且不写入", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, &fakeTx{})

		patch := NewBook(1, "Ghost", "nobody", 1)
		patch.ID = 5
		_, err := svc.UpdateBook(ctx, patch)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, "No book with id: 5", apperrors.GetAppError(err).Message)
		assert.Equal(t, 0, repo.saveCalls)
	})
}

// TestDeleteBookByID 测试删除图书
func TestDeleteBookByID(t *testing.T) {
	ctx := context.Background()

	t.Run("正常删除", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, &fakeTx{})

		created, err := svc.CreateBook(ctx, NewBook(1, "待删图书", "作者", 50))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBookByID(ctx, created.ID))

		_, err = svc.GetBookByID(ctx, created.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("删除不存在的图书返回EmptyResult", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeTx{})

		err := svc.DeleteBookByID(ctx, 33)
		require.Error(t, err)
		assert.True(t, apperrors.IsEmptyResult(err))
	})
}

// TestDeleteBooksByOwner 测试按读者批量删除
func TestDeleteBooksByOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, &fakeTx{})

	// 读者1有两本书，读者2有一本
	_, err := svc.CreateBook(ctx, NewBook(1, "书A", "作者A", 100))
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, NewBook(1, "书B", "作者B", 200))
	require.NoError(t, err)
	other, err := svc.CreateBook(ctx, NewBook(2, "书C", "作者C", 300))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooksByOwner(ctx, 1))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "只应该剩下读者2的图书")

	got, err := svc.GetBookByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.PersonID)

	// 读者没有图书时删0行，不算错误
	assert.NoError(t, svc.DeleteBooksByOwner(ctx, 1))
}
