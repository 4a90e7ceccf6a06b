// calling_convention.go - 调用约定与栈帧布局
//
// System V AMD64:
// - 前 6 个整数参数依次通过 %rdi, %rsi, %rdx, %rcx, %r8, %r9 传递
// - 其余参数由调用者压栈，被调用者在 16(%rbp) 起向上读取
// - 返回值通过 %rax 返回
// - 除法使用 %rdx:%rax，移位计数使用 %cl

package codegen

import (
	"github.com/samber/lo"
)

// CallingConv 调用约定
type CallingConv struct {
	Name        string
	ArgRegs     []Register // 参数寄存器（按顺序）
	RetReg      Register   // 返回值寄存器
	CallerSaved []Register // 调用者保存的寄存器
	CalleeSaved []Register // 被调用者保存的寄存器
	StackAlign  int        // 栈对齐要求（字节）

	// 栈上参数相对帧指针的起始偏移：保存的 %rbp + 返回地址
	FirstStackArgOffset int
}

// SystemV System V AMD64 调用约定 (Linux/macOS)
var SystemV = CallingConv{
	Name:                "sysv",
	ArgRegs:             []Register{RDI, RSI, RDX, RCX, R8, R9},
	RetReg:              RAX,
	CallerSaved:         []Register{RAX, RCX, RDX, RSI, RDI, R8, R9},
	CalleeSaved:         []Register{RBX},
	StackAlign:          16,
	FirstStackArgOffset: 16,
}

// NumRegArgs 通过寄存器传递的参数个数
func (c CallingConv) NumRegArgs() int {
	return len(c.ArgRegs)
}

// ArgReg 获取第 index 个参数的寄存器
func (c CallingConv) ArgReg(index int) (Register, bool) {
	if index >= 0 && index < len(c.ArgRegs) {
		return c.ArgRegs[index], true
	}
	return RegNone, false
}

// IncomingArgLocation 被调用者视角下第 index 个参数的位置
func (c CallingConv) IncomingArgLocation(index int) Location {
	if r, ok := c.ArgReg(index); ok {
		return RegLoc(r)
	}
	stackIndex := index - len(c.ArgRegs)
	return FrameLoc(c.FirstStackArgOffset + stackIndex*SlotSize)
}

// StackArgBytes 调用返回后需要弹出的栈参数字节数
func (c CallingConv) StackArgBytes(numArgs int) int {
	if numArgs <= len(c.ArgRegs) {
		return 0
	}
	return (numArgs - len(c.ArgRegs)) * SlotSize
}

// IsCallerSaved 检查寄存器是否是调用者保存的
func (c CallingConv) IsCallerSaved(r Register) bool {
	return lo.Contains(c.CallerSaved, r)
}

// IsCalleeSaved 检查寄存器是否是被调用者保存的
func (c CallingConv) IsCalleeSaved(r Register) bool {
	return lo.Contains(c.CalleeSaved, r)
}

// ============================================================================
// 帧布局
// ============================================================================

// CalleeSave 被调用者保存寄存器的保存槽
type CalleeSave struct {
	Reg  Register
	Slot Location
}

// FrameLayout 栈帧布局
type FrameLayout struct {
	ScanSize    int          // 扫描阶段估计的局部变量空间
	UsedSize    int          // 栈帧游标实际分配的空间
	TotalSize   int          // 序言中预留、尾声中释放的字节数
	CalleeSaves []CalleeSave // 需要在入口保存、返回前恢复的寄存器
}

// NewFrameLayout 创建帧布局，预留空间取两者较大值并按调用约定对齐
func NewFrameLayout(scanSize, usedSize int, saves []CalleeSave, conv CallingConv) FrameLayout {
	total := max(scanSize, usedSize)
	if align := conv.StackAlign; align > 0 {
		total = (total + align - 1) &^ (align - 1)
	}
	return FrameLayout{
		ScanSize:    scanSize,
		UsedSize:    usedSize,
		TotalSize:   total,
		CalleeSaves: saves,
	}
}
