package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xuelin/bookshelf/internal/application/book"
	"github.com/xuelin/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
	"github.com/xuelin/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookUseCase *appbook.UseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookUseCase *appbook.UseCase) *BookHandler {
	return &BookHandler{
		bookUseCase: bookUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.bookUseCase.CreateBook(c.Request.Context(), &appbook.BookDto{
		UserID:    req.UserID,
		Title:     req.Title,
		Author:    req.Author,
		PageCount: req.PageCount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.bookUseCase.UpdateBook(c.Request.Context(), &appbook.BookDto{
		ID:        id,
		Title:     req.Title,
		Author:    req.Author,
		PageCount: req.PageCount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// GetBook 获取图书
// @Summary      获取图书详情
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.bookUseCase.GetBookByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.bookUseCase.DeleteBookByID(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListBooks 获取全部图书
// @Summary      获取全部图书
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.bookUseCase.GetAllBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(result))
	for i, b := range result {
		list[i] = toBookResponse(b)
	}
	response.Success(c, list)
}

// toBookResponse 应用层DTO → HTTP响应
func toBookResponse(d *appbook.BookDto) *dto.BookResponse {
	return &dto.BookResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Author:    d.Author,
		PageCount: d.PageCount,
	}
}
