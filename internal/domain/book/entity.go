package book

// Book 图书实体
// 设计说明：
// 1. 多对一关联读者（PersonID外键），读者是关系生命周期的唯一拥有方：
//    删除读者会删除其全部图书，删除图书不影响读者
// 2. 领域实体不依赖GORM tag，映射由infrastructure层处理
type Book struct {
	ID        uint
	PersonID  uint // 所属读者ID（必填，创建时必须指向已存在的读者）
	Title     string
	Author    string
	PageCount int
}

// NewBook 创建新图书（工厂方法）
func NewBook(personID uint, title, author string, pageCount int) *Book {
	return &Book{
		PersonID:  personID,
		Title:     title,
		Author:    author,
		PageCount: pageCount,
	}
}

// Validate 校验持久化约束
func (b *Book) Validate() error {
	if b.PersonID == 0 {
		return ErrOwnerRequired
	}
	return nil
}

// Overwrite 用另一份数据覆盖可变字段（更新流程使用）
// 注意：只覆盖Title、Author、PageCount，所属读者（PersonID）保持不变
func (b *Book) Overwrite(src *Book) {
	b.Title = src.Title
	b.Author = src.Author
	b.PageCount = src.PageCount
}

// IsOwnedBy 判断图书是否属于指定读者
func (b *Book) IsOwnedBy(personID uint) bool {
	return b.PersonID == personID
}
