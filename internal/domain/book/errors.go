package book

import "errors"

// 领域错误定义
// 存储层把哨兵错误转换为统一的数据完整性错误码

var (
	ErrOwnerRequired = errors.New("图书必须有所属读者")
)
