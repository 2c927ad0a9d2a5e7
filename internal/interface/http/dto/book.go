package dto

// CreateBookRequest HTTP层创建图书请求
// user_id是所属读者ID，必须指向已存在的读者
type CreateBookRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	Title     string `json:"title" binding:"max=255"`
	Author    string `json:"author" binding:"max=255"`
	PageCount int    `json:"page_count" binding:"min=0"`
}

// UpdateBookRequest HTTP层更新图书请求
// id通过路径参数传递；所属读者不可变更，body不携带user_id
type UpdateBookRequest struct {
	Title     string `json:"title" binding:"max=255"`
	Author    string `json:"author" binding:"max=255"`
	PageCount int    `json:"page_count" binding:"min=0"`
}

// BookResponse 图书响应
type BookResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
}
