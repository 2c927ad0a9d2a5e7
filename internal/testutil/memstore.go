// Package testutil 提供测试用的内存存储实现
//
// 说明：
// 1. 实现domain层的Repository和TxManager接口，测试不依赖真实MySQL
// 2. 事务语义：Transaction持有全局事务锁（串行化并发事务），
//    fn返回error时回滚到事务开始前的快照——粗粒度地模拟了
//    悲观写锁+提交/回滚的行为
// 3. 自增ID从1开始分配，和MySQL的自增主键一致
package testutil

import (
	"context"
	"sync"

	"github.com/xuelin/bookshelf/internal/domain/book"
	"github.com/xuelin/bookshelf/internal/domain/person"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
)

// MemStore 内存存储
// persons/books按ID索引；mu保护单个操作，txMu串行化事务
type MemStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	persons      map[uint]person.Person
	books        map[uint]book.Book
	nextPersonID uint
	nextBookID   uint
}

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{
		persons:      make(map[uint]person.Person),
		books:        make(map[uint]book.Book),
		nextPersonID: 1,
		nextBookID:   1,
	}
}

// Transaction 执行事务
// 持有事务锁直到fn返回：并发事务被串行化，后来者阻塞等待先行者提交，
// 这正是悲观写锁在行为上的粗粒度等价物。fn返回error时回滚快照。
func (s *MemStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	// 事务开始前的快照，失败时回滚
	s.mu.Lock()
	personsSnap := make(map[uint]person.Person, len(s.persons))
	for k, v := range s.persons {
		personsSnap[k] = v
	}
	booksSnap := make(map[uint]book.Book, len(s.books))
	for k, v := range s.books {
		booksSnap[k] = v
	}
	nextPersonSnap, nextBookSnap := s.nextPersonID, s.nextBookID
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.persons = personsSnap
		s.books = booksSnap
		s.nextPersonID, s.nextBookID = nextPersonSnap, nextBookSnap
		s.mu.Unlock()
		return err
	}
	return nil
}

// =========================================
// 读者仓储
// =========================================

// PersonRepository 内存读者仓储
type PersonRepository struct {
	store *MemStore
}

// NewPersonRepository 创建内存读者仓储
func NewPersonRepository(store *MemStore) *PersonRepository {
	return &PersonRepository{store: store}
}

var _ person.Repository = (*PersonRepository)(nil)

// Save 保存读者（契约与MySQL实现一致）
func (r *PersonRepository) Save(ctx context.Context, p *person.Person) error {
	if p == nil {
		return apperrors.ErrInvalidParams
	}
	if err := p.Validate(); err != nil {
		return apperrors.DataIntegrity(err.Error())
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextPersonID
		s.nextPersonID++
	}
	s.persons[p.ID] = *p
	return nil
}

// FindByID 根据ID查找读者
func (r *PersonRepository) FindByID(ctx context.Context, id uint) (*person.Person, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, apperrors.UserNotFound(id)
	}
	return &p, nil
}

// FindByIDForUpdate 悲观锁查找读者
// 内存实现中锁由Transaction的事务锁承担，这里只做查找
func (r *PersonRepository) FindByIDForUpdate(ctx context.Context, id uint) (*person.Person, error) {
	return r.FindByID(ctx, id)
}

// DeleteByID 删除读者
func (r *PersonRepository) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[id]; !ok {
		return apperrors.EmptyResult("读者", id)
	}
	delete(s.persons, id)
	return nil
}

// Count 统计读者数量
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.persons)), nil
}

// =========================================
// 图书仓储
// =========================================

// BookRepository 内存图书仓储
type BookRepository struct {
	store *MemStore
}

// NewBookRepository 创建内存图书仓储
func NewBookRepository(store *MemStore) *BookRepository {
	return &BookRepository{store: store}
}

var _ book.Repository = (*BookRepository)(nil)

// Save 保存图书
func (r *BookRepository) Save(ctx context.Context, b *book.Book) error {
	if b == nil {
		return apperrors.ErrInvalidParams
	}
	if err := b.Validate(); err != nil {
		return apperrors.DataIntegrity(err.Error())
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// 外键约束：所属读者必须存在
	if _, ok := s.persons[b.PersonID]; !ok {
		return apperrors.DataIntegrity("所属读者不存在")
	}

	if b.ID == 0 {
		b.ID = s.nextBookID
		s.nextBookID++
	}
	s.books[b.ID] = *b
	return nil
}

// FindByID 根据ID查找图书
func (r *BookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, apperrors.BookNotFound(id)
	}
	return &b, nil
}

// FindByIDForUpdate 悲观锁查找图书
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

// FindAll 查询全部图书（map遍历顺序即存储顺序，契约不保证排序）
func (r *BookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]*book.Book, 0, len(s.books))
	for id := range s.books {
		b := s.books[id]
		books = append(books, &b)
	}
	return books, nil
}

// DeleteByID 删除图书
func (r *BookRepository) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.ErrInvalidParams
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return apperrors.EmptyResult("图书", id)
	}
	delete(s.books, id)
	return nil
}

// DeleteByPersonID 删除指定读者的全部图书（删0行不算错误）
func (r *BookRepository) DeleteByPersonID(ctx context.Context, personID uint) error {
	if personID == 0 {
		return apperrors.ErrInvalidParams
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, b := range s.books {
		if b.PersonID == personID {
			delete(s.books, id)
		}
	}
	return nil
}

// Count 统计图书数量
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.books)), nil
}
