// assembler.go - AT&T 语法汇编文本缓冲
//
// 函数体先写入缓冲区，栈帧大小在函数生成结束后才确定，
// 预留/释放栈空间和保存/恢复寄存器的位置先记为占位行，输出时再展开。

package codegen

import (
	"fmt"
	"io"
	"strings"
)

// placeholder 占位行类型
type placeholder int

const (
	phNone          placeholder = iota
	phReserve                   // subq $N, %rsp
	phRelease                   // addq $N, %rsp
	phSaveCallee                // movq %rbx, slot
	phRestoreCallee             // movq slot, %rbx
)

type asmLine struct {
	text    string
	comment string
	indent  bool
	ph      placeholder
}

// Assembler 汇编文本缓冲
type Assembler struct {
	lines    []asmLine
	comments bool
}

// NewAssembler 创建汇编缓冲
func NewAssembler(comments bool) *Assembler {
	return &Assembler{comments: comments}
}

// Reset 清空缓冲区
func (a *Assembler) Reset() {
	a.lines = a.lines[:0]
}

// Len 返回已缓冲的行数（含占位行）
func (a *Assembler) Len() int {
	return len(a.lines)
}

// ============================================================================
// 基础写入
// ============================================================================

// Directive 输出汇编指示
func (a *Assembler) Directive(format string, args ...interface{}) {
	a.lines = append(a.lines, asmLine{text: fmt.Sprintf(format, args...), indent: true})
}

// Label 输出标签
func (a *Assembler) Label(name string) {
	a.lines = append(a.lines, asmLine{text: name + ":"})
}

// Blank 输出空行
func (a *Assembler) Blank() {
	a.lines = append(a.lines, asmLine{})
}

// Instr 输出一条指令
func (a *Assembler) Instr(mnemonic string, operands ...string) {
	a.InstrComment("", mnemonic, operands...)
}

// InstrComment 输出带注释的指令
func (a *Assembler) InstrComment(comment, mnemonic string, operands ...string) {
	text := mnemonic
	if len(operands) > 0 {
		text += " " + strings.Join(operands, ", ")
	}
	a.lines = append(a.lines, asmLine{text: text, comment: comment, indent: true})
}

func (a *Assembler) placeholder(ph placeholder) {
	a.lines = append(a.lines, asmLine{ph: ph, indent: true})
}

// ============================================================================
// 指令
// ============================================================================

// Push pushq src
func (a *Assembler) Push(src Location) {
	a.Instr("pushq", src.String())
}

// Pop popq dst
func (a *Assembler) Pop(dst Register) {
	a.Instr("popq", dst.String())
}

// Mov movq src, dst
func (a *Assembler) Mov(src, dst Location) {
	a.Instr("movq", src.String(), dst.String())
}

// MovComment movq src, dst # comment
func (a *Assembler) MovComment(comment string, src, dst Location) {
	a.InstrComment(comment, "movq", src.String(), dst.String())
}

// Arith 二元算术/位运算: op src, dst
func (a *Assembler) Arith(mnemonic string, src, dst Location) {
	a.Instr(mnemonic, src.String(), dst.String())
}

// Cqto 把 %rax 符号扩展到 %rdx:%rax
func (a *Assembler) Cqto() {
	a.Instr("cqto")
}

// Idiv 单操作数有符号除法
func (a *Assembler) Idiv(divisor Location) {
	a.Instr("idivq", divisor.String())
}

// Unary 单操作数指令 (negq / notq)
func (a *Assembler) Unary(mnemonic string, dst Register) {
	a.Instr(mnemonic, dst.String())
}

// Shift 按 %cl 移位
func (a *Assembler) Shift(mnemonic string, dst Register) {
	a.Instr(mnemonic, RCX.Low8(), dst.String())
}

// Call 调用符号
func (a *Assembler) Call(symbol string) {
	a.Instr("call", symbol)
}

// Ret 返回
func (a *Assembler) Ret() {
	a.Instr("retq")
}

// AddRSP 调整栈指针
func (a *Assembler) AddRSP(bytes int, comment string) {
	a.InstrComment(comment, "addq", Imm(int64(bytes)).String(), RSP.String())
}

// ReserveFrame 预留栈帧占位
func (a *Assembler) ReserveFrame() {
	a.placeholder(phReserve)
	a.placeholder(phSaveCallee)
}

// ReleaseFrame 释放栈帧占位
func (a *Assembler) ReleaseFrame() {
	a.placeholder(phRestoreCallee)
	a.placeholder(phRelease)
}

// ============================================================================
// 输出
// ============================================================================

// Lines 按给定布局展开占位行，返回全部文本行
func (a *Assembler) Lines(layout FrameLayout) []string {
	out := make([]string, 0, len(a.lines))
	emit := func(text, comment string, indent bool) {
		if text == "" {
			out = append(out, "")
			return
		}
		if indent {
			text = "\t" + text
		}
		if a.comments && comment != "" {
			text += "  # " + comment
		}
		out = append(out, text)
	}

	for _, l := range a.lines {
		switch l.ph {
		case phNone:
			emit(l.text, l.comment, l.indent)
		case phReserve:
			if layout.TotalSize > 0 {
				emit(fmt.Sprintf("subq $%d, %%rsp", layout.TotalSize), "Allocate stack space", true)
			}
		case phRelease:
			if layout.TotalSize > 0 {
				emit(fmt.Sprintf("addq $%d, %%rsp", layout.TotalSize), "Deallocate stack space", true)
			}
		case phSaveCallee:
			for _, s := range layout.CalleeSaves {
				emit(fmt.Sprintf("movq %s, %s", s.Reg, s.Slot), "save callee-saved "+s.Reg.String(), true)
			}
		case phRestoreCallee:
			for _, s := range layout.CalleeSaves {
				emit(fmt.Sprintf("movq %s, %s", s.Slot, s.Reg), "restore "+s.Reg.String(), true)
			}
		}
	}
	return out
}

// WriteTo 按给定布局写出汇编文本
func (a *Assembler) WriteTo(w io.Writer, layout FrameLayout) (int64, error) {
	var total int64
	for _, line := range a.Lines(layout) {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
