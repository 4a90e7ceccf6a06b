package i18n

var messagesEN = map[string]string{
	// ========== Codegen ==========
	ErrUnboundVariable:  "variable '%s' is not bound in function '%s'",
	ErrWriteOutput:      "failed to write assembly output: %v",
	ErrInvalidDecl:      "invalid function declaration: %s",
	WarnUnhandledOp:     "unhandled operation '%s'",
	WarnUnsupportedExpr: "unsupported expression kind '%s'",
	WarnUnsupportedStmt: "unsupported statement kind '%s'",
	NoteUnboundVariable: "the front end should reject references to undeclared names",
	NoteKnownIncomplete: "no instructions were emitted for this node",

	// ========== CLI ==========
	CliUsage:        "Usage: asmgen [options] <program.json>",
	CliReadInput:    "error reading %s: %v",
	CliLoadConfig:   "error loading config %s: %v",
	CliCreateOutput: "error creating %s: %v",
	CliWritten:      "assembly written to %s",
	CliBadLanguage:  "unknown language %q, falling back to English",
}
