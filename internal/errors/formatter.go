package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ============================================================================
// 代码生成错误
// ============================================================================

// CodegenError 代码生成错误
type CodegenError struct {
	Code    string   // 错误码 (G0001)
	Level   Level    // 错误级别
	Message string   // 主消息
	Func    string   // 所在函数（可选）
	Notes   []string // 附加说明
	Err     error    // 底层错误（可选）
}

// New 创建错误级别的 CodegenError
func New(code, fn, message string) *CodegenError {
	level := LevelError
	if !IsFatal(code) {
		level = LevelWarning
	}
	return &CodegenError{Code: code, Level: level, Func: fn, Message: message}
}

// Wrap 包装底层错误
func Wrap(code, message string, err error) *CodegenError {
	e := New(code, "", message)
	e.Err = err
	return e
}

// WithNote 追加说明
func (e *CodegenError) WithNote(note string) *CodegenError {
	e.Notes = append(e.Notes, note)
	return e
}

// Error 实现 error 接口
func (e *CodegenError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s[%s]: %s (in %s)", e.Level, e.Code, e.Message, e.Func)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *CodegenError) Unwrap() error {
	return e.Err
}

// CodeOf 返回错误链中第一个 CodegenError 的错误码
func CodeOf(err error) string {
	var ce *CodegenError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器
type Formatter struct {
	Colors    bool // 是否使用颜色
	ShowNotes bool // 是否显示附加说明
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:    ColorsEnabled(),
		ShowNotes: true,
	}
}

// Format 格式化错误
//
//	error[G0001]: variable 'y' is not bound in function 'f'
//	 --> function f
//	 = note: ...
func (f *Formatter) Format(err *CodegenError) string {
	var sb strings.Builder

	levelColor := f.levelColor(err.Level)
	sb.WriteString(f.colorize(err.Level.String(), levelColor))
	sb.WriteString(f.colorize(fmt.Sprintf("[%s]", err.Code), levelColor))
	sb.WriteString(": ")
	sb.WriteString(err.Message)
	sb.WriteString("\n")

	if err.Func != "" {
		sb.WriteString(fmt.Sprintf(" %s function %s\n", f.colorize("-->", ColorCyan), err.Func))
	}

	if f.ShowNotes {
		for _, note := range err.Notes {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = note:", ColorCyan), note))
		}
	}

	return sb.String()
}

// FormatError 格式化任意错误，非 CodegenError 按普通错误输出
func (f *Formatter) FormatError(err error) string {
	var ce *CodegenError
	if stderrors.As(err, &ce) {
		return f.Format(ce)
	}
	return fmt.Sprintf("%s: %v\n", f.colorize("error", ColorBoldRed), err)
}

func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorBoldRed
	case LevelWarning:
		return ColorBoldYellow
	default:
		return ColorBoldCyan
	}
}

func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return colorize(s, color)
}
