package user

import "github.com/xuelin/bookshelf/internal/domain/person"

// 映射层：DTO与领域实体之间的纯转换
// 约定:
// 1. 纯函数，无副作用，逐字段拷贝，不含任何业务逻辑
// 2. 本地约定：nil入参映射为nil出参（不panic、不报错）

// UserDtoToPerson DTO → 领域实体
func UserDtoToPerson(dto *UserDto) *person.Person {
	if dto == nil {
		return nil
	}
	return &person.Person{
		ID:       dto.ID,
		FullName: dto.FullName,
		Title:    dto.Title,
		Age:      dto.Age,
	}
}

// PersonToUserDto 领域实体 → DTO
func PersonToUserDto(p *person.Person) *UserDto {
	if p == nil {
		return nil
	}
	return &UserDto{
		ID:       p.ID,
		FullName: p.FullName,
		Title:    p.Title,
		Age:      p.Age,
	}
}
