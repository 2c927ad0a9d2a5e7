package user

// UserDto 读者DTO
// 说明:
// 1. 应用层边界数据，结构上镜像读者实体的字段，不携带行为
// 2. 创建时ID由存储分配，入参的ID会被忽略
// 3. 不持久化：往返存储一次之后ID才有持久化身份
type UserDto struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}
