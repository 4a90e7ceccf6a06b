// Package codegen 把函数语法树翻译为 x86-64 AT&T 语法的汇编文本
//
// 每个函数独立生成：寄存器表、存储表和栈帧游标在函数开始时创建，
// 函数结束时丢弃。函数体先写入缓冲区，栈帧大小确定后再统一输出。
package codegen

// ============================================================================
// 寄存器
// ============================================================================

// Register 物理寄存器
type Register int

const (
	RegNone Register = iota - 1
	RAX
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9

	numRegisters = int(R9) + 1
)

var registerNames = [numRegisters]string{
	RAX: "%rax",
	RCX: "%rcx",
	RDX: "%rdx",
	RBX: "%rbx",
	RSP: "%rsp",
	RBP: "%rbp",
	RSI: "%rsi",
	RDI: "%rdi",
	R8:  "%r8",
	R9:  "%r9",
}

func (r Register) String() string {
	if r < 0 || int(r) >= numRegisters {
		return "NoReg"
	}
	return registerNames[r]
}

// Low8 返回低 8 位寄存器名（移位计数使用 %cl）
func (r Register) Low8() string {
	switch r {
	case RAX:
		return "%al"
	case RCX:
		return "%cl"
	case RDX:
		return "%dl"
	case RBX:
		return "%bl"
	}
	return r.String()
}

// Accumulator 累加器，表达式结果和函数返回值都放在这里
const Accumulator = RAX

// pinned 栈指针和帧指针永远不可用
func (r Register) pinned() bool {
	return r == RSP || r == RBP
}

// ============================================================================
// 寄存器表
// ============================================================================

// RegisterTable 记录寄存器是否可用
//
// 成员和顺序在创建时固定：先是 4 个通用寄存器（调用者保存的排在前面），
// 然后是栈指针/帧指针，最后是剩余的参数寄存器。Claim 按这个顺序查找。
type RegisterTable struct {
	order     []Register
	available [numRegisters]bool
}

// NewRegisterTable 创建寄存器表，除 %rsp/%rbp 外全部可用
func NewRegisterTable() *RegisterTable {
	t := &RegisterTable{
		order: []Register{RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI, R8, R9},
	}
	t.Reset()
	return t
}

// Reset 恢复初始状态
func (t *RegisterTable) Reset() {
	for _, r := range t.order {
		t.available[r] = !r.pinned()
	}
}

// Claim 取出一个可用寄存器并标记为已占用
// excludeAccumulator 为 true 时跳过 %rax。没有可用寄存器时返回 false，
// 调用方应退回到栈槽。
func (t *RegisterTable) Claim(excludeAccumulator bool) (Register, bool) {
	for _, r := range t.order {
		if !t.available[r] {
			continue
		}
		if excludeAccumulator && r == Accumulator {
			continue
		}
		t.available[r] = false
		return r, true
	}
	return RegNone, false
}

// Reserve 标记寄存器为已占用
func (t *RegisterTable) Reserve(r Register) {
	if t.valid(r) {
		t.available[r] = false
	}
}

// Release 释放寄存器，%rsp/%rbp 保持不可用
func (t *RegisterTable) Release(r Register) {
	if t.valid(r) && !r.pinned() {
		t.available[r] = true
	}
}

// IsAvailable 检查寄存器是否可用
func (t *RegisterTable) IsAvailable(r Register) bool {
	return t.valid(r) && t.available[r]
}

// Universe 返回全部成员
func (t *RegisterTable) Universe() []Register {
	return append([]Register(nil), t.order...)
}

// Available 返回当前可用的寄存器
func (t *RegisterTable) Available() []Register {
	var regs []Register
	for _, r := range t.order {
		if t.available[r] {
			regs = append(regs, r)
		}
	}
	return regs
}

// Unavailable 返回已占用（含固定不可用）的寄存器
func (t *RegisterTable) Unavailable() []Register {
	var regs []Register
	for _, r := range t.order {
		if !t.available[r] {
			regs = append(regs, r)
		}
	}
	return regs
}

func (t *RegisterTable) valid(r Register) bool {
	return r >= 0 && int(r) < numRegisters
}
