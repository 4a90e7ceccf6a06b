package codegen

import (
	"sort"
	"testing"
)

func sortedRegs(regs []Register) []Register {
	out := append([]Register(nil), regs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func assertPartition(t *testing.T, tbl *RegisterTable) {
	t.Helper()
	all := append(tbl.Available(), tbl.Unavailable()...)
	got := sortedRegs(all)
	want := sortedRegs(tbl.Universe())
	if len(got) != len(want) {
		t.Fatalf("available+unavailable has %d registers, universe has %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("partition mismatch: got %v, want %v", got, want)
		}
	}
}

func TestRegisterNames(t *testing.T) {
	tests := []struct {
		reg  Register
		want string
	}{
		{RAX, "%rax"},
		{RBP, "%rbp"},
		{R9, "%r9"},
		{RegNone, "NoReg"},
	}
	for _, tt := range tests {
		if got := tt.reg.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.reg, got, tt.want)
		}
	}
	if RCX.Low8() != "%cl" {
		t.Errorf("RCX.Low8() = %q", RCX.Low8())
	}
}

func TestNewRegisterTable(t *testing.T) {
	tbl := NewRegisterTable()
	if len(tbl.Universe()) != 10 {
		t.Fatalf("universe size: got %d, want 10", len(tbl.Universe()))
	}
	if tbl.IsAvailable(RSP) || tbl.IsAvailable(RBP) {
		t.Error("stack and frame pointers must start unavailable")
	}
	if len(tbl.Available()) != 8 {
		t.Errorf("available: got %d, want 8", len(tbl.Available()))
	}
	assertPartition(t, tbl)
}

func TestClaimExcludesAccumulator(t *testing.T) {
	tbl := NewRegisterTable()

	r, ok := tbl.Claim(true)
	if !ok || r != RCX {
		t.Fatalf("first claim excluding accumulator: got %s, %v", r, ok)
	}
	if tbl.IsAvailable(RCX) {
		t.Error("claimed register should be unavailable")
	}

	r, ok = tbl.Claim(false)
	if !ok || r != RAX {
		t.Errorf("claim including accumulator: got %s, %v", r, ok)
	}
	assertPartition(t, tbl)
}

func TestClaimExhausted(t *testing.T) {
	tbl := NewRegisterTable()
	for {
		r, ok := tbl.Claim(true)
		if !ok {
			break
		}
		if r == RAX || r == RSP || r == RBP {
			t.Fatalf("claimed %s", r)
		}
	}
	if got := tbl.Available(); len(got) != 1 || got[0] != RAX {
		t.Errorf("only the accumulator should remain, got %v", got)
	}
	if _, ok := tbl.Claim(true); ok {
		t.Error("claim should fail once exhausted")
	}
	assertPartition(t, tbl)
}

func TestReleaseNeverFreesPinned(t *testing.T) {
	tbl := NewRegisterTable()
	tbl.Release(RSP)
	tbl.Release(RBP)
	if tbl.IsAvailable(RSP) || tbl.IsAvailable(RBP) {
		t.Error("pinned registers must stay unavailable")
	}

	tbl.Reserve(RDI)
	if tbl.IsAvailable(RDI) {
		t.Error("reserved register should be unavailable")
	}
	tbl.Release(RDI)
	if !tbl.IsAvailable(RDI) {
		t.Error("released register should be available")
	}

	tbl.Reserve(RSI)
	tbl.Reset()
	if !tbl.IsAvailable(RSI) || tbl.IsAvailable(RSP) {
		t.Error("reset should restore the initial state")
	}
	assertPartition(t, tbl)
}
