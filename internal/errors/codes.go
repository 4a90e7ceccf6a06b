// Package errors 提供代码生成后端的错误类型与格式化
package errors

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误，终止生成
	LevelWarning              // 警告，生成降级结果
	LevelNote                 // 提示
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	default:
		return "unknown"
	}
}

// ============================================================================
// 代码生成错误码 (G 开头)
// ============================================================================

const (
	// G0001-G0099: 致命错误
	G0001 = "G0001" // 变量未绑定存储位置
	G0002 = "G0002" // 输出写入失败
	G0003 = "G0003" // 无效的函数声明

	// G0100-G0199: 可恢复，降级输出
	G0100 = "G0100" // 未处理的运算符
	G0101 = "G0101" // 不支持的表达式类型
	G0102 = "G0102" // 不支持的语句类型
)

// IsFatal 检查错误码是否终止生成
func IsFatal(code string) bool {
	switch code {
	case G0001, G0002, G0003:
		return true
	}
	return false
}
