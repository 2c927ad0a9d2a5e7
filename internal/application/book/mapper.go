package book

import "github.com/xuelin/bookshelf/internal/domain/book"

// 映射层：DTO与领域实体之间的纯转换
// 约定同user包：纯函数、逐字段拷贝、nil入参映射为nil出参

// BookDtoToBook DTO → 领域实体
func BookDtoToBook(dto *BookDto) *book.Book {
	if dto == nil {
		return nil
	}
	return &book.Book{
		ID:        dto.ID,
		PersonID:  dto.UserID,
		Title:     dto.Title,
		Author:    dto.Author,
		PageCount: dto.PageCount,
	}
}

// BookToBookDto 领域实体 → DTO
func BookToBookDto(b *book.Book) *BookDto {
	if b == nil {
		return nil
	}
	return &BookDto{
		ID:        b.ID,
		UserID:    b.PersonID,
		Title:     b.Title,
		Author:    b.Author,
		PageCount: b.PageCount,
	}
}

// BooksToBookDtos 实体切片 → DTO切片
// nil切片映射为nil，空切片映射为空切片
func BooksToBookDtos(books []*book.Book) []*BookDto {
	if books == nil {
		return nil
	}
	dtos := make([]*BookDto, len(books))
	for i, b := range books {
		dtos[i] = BookToBookDto(b)
	}
	return dtos
}
