package i18n

var messagesZH = map[string]string{
	// ========== 代码生成 ==========
	ErrUnboundVariable:  "函数 '%[2]s' 中变量 '%[1]s' 未绑定存储位置",
	ErrWriteOutput:      "写入汇编输出失败: %v",
	ErrInvalidDecl:      "无效的函数声明: %s",
	WarnUnhandledOp:     "未处理的运算 '%s'",
	WarnUnsupportedExpr: "不支持的表达式类型 '%s'",
	WarnUnsupportedStmt: "不支持的语句类型 '%s'",
	NoteUnboundVariable: "前端应当拒绝引用未声明的名字",
	NoteKnownIncomplete: "该节点没有生成任何指令",

	// ========== 命令行 ==========
	CliUsage:        "用法: asmgen [选项] <program.json>",
	CliReadInput:    "读取 %s 失败: %v",
	CliLoadConfig:   "加载配置 %s 失败: %v",
	CliCreateOutput: "创建 %s 失败: %v",
	CliWritten:      "汇编已写入 %s",
	// CliBadLanguage 只在语言尚未确定时输出，不提供中文版本
}
