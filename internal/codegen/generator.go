package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/asmgen/internal/ast"
	"github.com/tangzhangming/asmgen/internal/errors"
	"github.com/tangzhangming/asmgen/internal/i18n"
)

// ============================================================================
// 配置
// ============================================================================

// Options 代码生成选项
type Options struct {
	// UseRegisters 中间结果优先放在空闲寄存器
	UseRegisters bool
	// Comments 在汇编中输出注释
	Comments bool
	// Conv 调用约定
	Conv CallingConv
	// Logger 日志，nil 时不输出
	Logger *zap.Logger
}

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		UseRegisters: true,
		Comments:     true,
		Conv:         SystemV,
	}
}

// ============================================================================
// 生成器
// ============================================================================

// Generator 汇编生成器
type Generator struct {
	opts     Options
	log      *zap.Logger
	warnings []*errors.CodegenError
}

// NewGenerator 创建生成器，opts 为 nil 时使用默认选项
func NewGenerator(opts *Options) *Generator {
	if opts == nil {
		opts = DefaultOptions()
	}
	g := &Generator{opts: *opts, log: opts.Logger}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.opts.Conv.ArgRegs == nil {
		g.opts.Conv = SystemV
	}
	return g
}

// Warnings 返回生成过程中的可恢复诊断
func (g *Generator) Warnings() []*errors.CodegenError {
	return g.warnings
}

// Function 已生成的函数
type Function struct {
	Name   string
	Layout FrameLayout
	asm    *Assembler
}

// Lines 返回函数的汇编文本行
func (f *Function) Lines() []string {
	return f.asm.Lines(f.Layout)
}

// WriteTo 写出函数的汇编文本
func (f *Function) WriteTo(w io.Writer) (int64, error) {
	return f.asm.WriteTo(w, f.Layout)
}

func (f *Function) String() string {
	return strings.Join(f.Lines(), "\n") + "\n"
}

// GenerateFunction 为单个函数声明生成汇编
func (g *Generator) GenerateFunction(decl *ast.Decl) (*Function, error) {
	if decl == nil || decl.Kind != ast.DeclFunc || decl.Name == "" {
		what := "<nil>"
		if decl != nil {
			what = decl.String()
		}
		return nil, errors.New(errors.G0003, "", i18n.T(i18n.ErrInvalidDecl, what))
	}

	fg := newFuncGen(g, decl)
	fg.emitPrologue()
	fg.bindIncomingArguments(decl.Args)
	if err := fg.lowerBody(decl.Body); err != nil {
		return nil, err
	}

	layout := NewFrameLayout(fg.scanSize, fg.frame.Used(), fg.calleeSaves, g.opts.Conv)
	fg.log.Info("generated function",
		zap.Int("args", len(decl.Args)),
		zap.Int("statements", len(decl.Body)),
		zap.Int("frame", layout.TotalSize),
	)

	return &Function{Name: decl.Name, Layout: layout, asm: fg.asm}, nil
}

// Generate 依次为每个函数声明生成汇编并写入 w
// 非函数声明被忽略。任何错误都会终止生成。
func (g *Generator) Generate(w io.Writer, prog *ast.Program) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("\t.text\n"); err != nil {
		return writeError(err)
	}

	for _, decl := range prog.Decls {
		if decl == nil {
			continue
		}
		if decl.Kind != ast.DeclFunc {
			g.log.Debug("skipping declaration", zap.String("name", decl.Name), zap.Stringer("kind", decl.Kind))
			continue
		}

		fn, err := g.GenerateFunction(decl)
		if err != nil {
			return err
		}

		if _, err := bw.WriteString("\n"); err != nil {
			return writeError(err)
		}
		if _, err := fn.WriteTo(bw); err != nil {
			return writeError(multierr.Append(err, bw.Flush()))
		}
	}

	if err := bw.Flush(); err != nil {
		return writeError(err)
	}
	return nil
}

func writeError(err error) error {
	return errors.Wrap(errors.G0002, i18n.T(i18n.ErrWriteOutput, err), err)
}

// ============================================================================
// 单个函数的生成状态
// ============================================================================

// holder 寄存器中存放的值
type holder struct {
	loc  *Location
	temp bool // 表达式中间结果，用完即释放
}

// funcGen 单个函数的生成状态，函数结束后丢弃
type funcGen struct {
	g    *Generator
	decl *ast.Decl
	conv CallingConv
	log  *zap.Logger

	asm   *Assembler
	regs  *RegisterTable
	store *StorageTable
	frame *FrameCursor

	// 当前驻留在寄存器中的值，被覆盖前需要溢出
	holders     map[Register]holder
	calleeSaves []CalleeSave

	scanSize int
	returned bool
}

func newFuncGen(g *Generator, decl *ast.Decl) *funcGen {
	return &funcGen{
		g:       g,
		decl:    decl,
		conv:    g.opts.Conv,
		log:     g.log.With(zap.String("func", decl.Name)),
		asm:     NewAssembler(g.opts.Comments),
		regs:    NewRegisterTable(),
		store:   NewStorageTable(),
		frame:   NewFrameCursor(),
		holders: make(map[Register]holder),
	}
}

// warn 记录可恢复的诊断
func (fg *funcGen) warn(code, msgID string, subject fmt.Stringer) {
	err := errors.New(code, fg.decl.Name, i18n.T(msgID, subject.String())).
		WithNote(i18n.T(i18n.NoteKnownIncomplete))
	fg.g.warnings = append(fg.g.warnings, err)
	fg.log.Warn(err.Message, zap.String("code", code), zap.Stringer("node", subject))
}

// unbound 变量未绑定的致命错误
func (fg *funcGen) unbound(name string) error {
	return errors.New(errors.G0001, fg.decl.Name, i18n.T(i18n.ErrUnboundVariable, name, fg.decl.Name)).
		WithNote(i18n.T(i18n.NoteUnboundVariable))
}
