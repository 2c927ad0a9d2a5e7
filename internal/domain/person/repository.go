package person

import "context"

// Repository 读者仓储接口（领域层定义）
// 设计说明：
// 1. 依赖倒置原则（DIP）：领域层定义接口，基础设施层实现
// 2. 便于单元测试（用内存实现替换MySQL实现）
// 3. 领域层不依赖GORM等外部库
type Repository interface {
	// Save 保存读者
	// - ID为0时插入，存储层回填自增ID
	// - ID非0时整行覆盖更新
	// - 传入nil立即返回参数错误（不访问存储）
	// - FullName/Title为空返回数据完整性错误
	Save(ctx context.Context, p *Person) error

	// FindByID 根据ID查询读者（普通读，不加锁）
	// 不存在时返回NotFound错误（"No user with id: <id>"）
	FindByID(ctx context.Context, id uint) (*Person, error)

	// FindByIDForUpdate 根据ID查询读者并加悲观写锁
	// 语义：SELECT ... FOR UPDATE，锁持有到事务提交
	// 必须在TxManager.Transaction内调用，否则锁没有事务边界
	FindByIDForUpdate(ctx context.Context, id uint) (*Person, error)

	// DeleteByID 根据ID删除读者
	// - id为0立即返回参数错误
	// - 记录不存在返回EmptyResult错误（存储状态不变）
	DeleteByID(ctx context.Context, id uint) error

	// Count 统计读者数量
	Count(ctx context.Context) (int64, error)
}

// TxManager 事务管理器接口
// 说明：fn内通过context传递事务，Repository实现从context取事务连接，
// fn返回error时回滚，返回nil时提交
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
