package i18n

// 消息 ID
const (
	// ========== 代码生成 ==========
	ErrUnboundVariable  = "codegen.unbound_variable"
	ErrWriteOutput      = "codegen.write_output"
	ErrInvalidDecl      = "codegen.invalid_decl"
	WarnUnhandledOp     = "codegen.unhandled_op"
	WarnUnsupportedExpr = "codegen.unsupported_expr"
	WarnUnsupportedStmt = "codegen.unsupported_stmt"
	NoteUnboundVariable = "codegen.note.unbound_variable"
	NoteKnownIncomplete = "codegen.note.known_incomplete"

	// ========== 命令行 ==========
	CliUsage        = "cli.usage"
	CliReadInput    = "cli.read_input"
	CliLoadConfig   = "cli.load_config"
	CliCreateOutput = "cli.create_output"
	CliWritten      = "cli.written"
	CliBadLanguage  = "cli.bad_language"
)
