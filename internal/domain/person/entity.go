package person

// Person 读者实体（聚合根）
// DDD设计说明：
// 1. Person是读者聚合的根实体，拥有零到多本图书（一对多，Person是父方）
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
// 3. ID由存储层分配（自增主键），创建前为0
type Person struct {
	ID       uint
	FullName string // 姓名（必填）
	Title    string // 称谓/角色标签（必填）
	Age      int
}

// NewPerson 创建新读者（工厂方法）
// ID留空，由存储层在首次保存时分配
func NewPerson(fullName, title string, age int) *Person {
	return &Person{
		FullName: fullName,
		Title:    title,
		Age:      age,
	}
}

// Validate 校验持久化约束
// 说明：FullName和Title在持久化时必须非空，
// 数据库的NOT NULL约束拦不住Go的空字符串，所以由存储层在写入前调用此方法
func (p *Person) Validate() error {
	if p.FullName == "" {
		return ErrFullNameRequired
	}
	if p.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// Overwrite 用另一份数据覆盖可变字段（更新流程使用）
// 领域行为：身份（ID）保持不变，只覆盖FullName、Title、Age
func (p *Person) Overwrite(src *Person) {
	p.FullName = src.FullName
	p.Title = src.Title
	p.Age = src.Age
}
