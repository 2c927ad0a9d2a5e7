package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是面向调用方的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapDatabase 包装数据库错误（错误码50001）
// 存储层用它包装GORM/驱动错误，和普通内部错误区分开
func WrapDatabase(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound = 40401 // 读者不存在
	ErrCodeBookNotFound = 40402 // 图书不存在
	ErrCodeEmptyResult  = 40410 // 删除时记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError = 40000 // 业务错误(通用)
	ErrCodeDataIntegrity = 40001 // 数据完整性约束冲突(必填字段为空、外键缺失)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "系统内部错误")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
)

// =========================================
// NotFound错误构造
// =========================================
// 说明：NotFound的message格式是对外契约的一部分，
// 调用方依赖"No user with id: <id>"这个精确格式，不要改动。

// UserNotFound 读者不存在
func UserNotFound(id uint) *AppError {
	return New(ErrCodeUserNotFound, fmt.Sprintf("No user with id: %d", id))
}

// BookNotFound 图书不存在
func BookNotFound(id uint) *AppError {
	return New(ErrCodeBookNotFound, fmt.Sprintf("No book with id: %d", id))
}

// DataIntegrity 数据完整性约束冲突
func DataIntegrity(message string) *AppError {
	return New(ErrCodeDataIntegrity, message)
}

// EmptyResult 删除目标不存在
func EmptyResult(kind string, id uint) *AppError {
	return New(ErrCodeEmptyResult, fmt.Sprintf("删除失败，%s不存在: id=%d", kind, id))
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// codeOf 提取错误码，非AppError返回0
func codeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// IsNotFound 判断是否为资源不存在错误
func IsNotFound(err error) bool {
	switch codeOf(err) {
	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeBookNotFound:
		return true
	}
	return false
}

// IsDataIntegrity 判断是否为数据完整性错误
func IsDataIntegrity(err error) bool {
	return codeOf(err) == ErrCodeDataIntegrity
}

// IsEmptyResult 判断是否为删除目标不存在错误
func IsEmptyResult(err error) bool {
	return codeOf(err) == ErrCodeEmptyResult
}

// IsInvalidParams 判断是否为参数错误
func IsInvalidParams(err error) bool {
	switch codeOf(err) {
	case ErrCodeInvalidParams, ErrCodeBindError:
		return true
	}
	return false
}
