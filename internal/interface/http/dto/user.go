package dto

// CreateUserRequest HTTP层创建读者请求
// 说明：HTTP层的DTO，包含参数验证tag；创建时不携带id
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Title    string `json:"title" binding:"required,max=255"`
	Age      int    `json:"age" binding:"min=0"`
}

// UpdateUserRequest HTTP层更新读者请求
// id通过路径参数传递，body只携带可变字段
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Title    string `json:"title" binding:"required,max=255"`
	Age      int    `json:"age" binding:"min=0"`
}

// UserResponse 读者响应
type UserResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}
