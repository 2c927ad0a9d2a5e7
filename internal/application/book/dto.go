package book

// BookDto 图书DTO
// 说明：结构上镜像图书实体的字段，UserID是所属读者ID
type BookDto struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
}
