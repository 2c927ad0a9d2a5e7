package book

import "context"

// Repository 图书仓储接口（领域层定义）
// 与person.Repository遵循同一套契约，另外提供FindAll和按读者批量删除
type Repository interface {
	// Save 保存图书
	// - ID为0时插入并回填自增ID，ID非0时整行覆盖更新
	// - 传入nil立即返回参数错误（不访问存储）
	// - PersonID为0或指向不存在的读者时返回数据完整性错误
	Save(ctx context.Context, b *Book) error

	// FindByID 根据ID查询图书（普通读，不加锁）
	// 不存在时返回NotFound错误（"No book with id: <id>"）
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDForUpdate 根据ID查询图书并加悲观写锁
	// 语义：SELECT ... FOR UPDATE，必须在事务内调用
	FindByIDForUpdate(ctx context.Context, id uint) (*Book, error)

	// FindAll 查询全部图书
	// 顺序由存储决定，契约不保证排序
	FindAll(ctx context.Context) ([]*Book, error)

	// DeleteByID 根据ID删除图书
	// 记录不存在返回EmptyResult错误
	DeleteByID(ctx context.Context, id uint) error

	// DeleteByPersonID 删除指定读者的全部图书（级联删除用）
	// 读者没有图书时删除0行，不算错误
	DeleteByPersonID(ctx context.Context, personID uint) error

	// Count 统计图书数量
	Count(ctx context.Context) (int64, error)
}

// TxManager 事务管理器接口
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
