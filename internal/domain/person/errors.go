package person

import "errors"

// 领域错误定义
// 说明：哨兵错误供存储层和上层用errors.Is判断，
// 存储层会把它们转换为统一的数据完整性错误码

var (
	ErrFullNameRequired = errors.New("读者姓名不能为空")
	ErrTitleRequired    = errors.New("读者称谓不能为空")
)
