package codegen

import "testing"

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{RegLoc(RDI), "%rdi"},
		{FrameLoc(-8), "-8(%rbp)"},
		{FrameLoc(16), "16(%rbp)"},
		{Imm(5), "$5"},
		{Imm(-3), "$-3"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
	if !AccumulatorLoc.IsAccumulator() || RegLoc(RCX).IsAccumulator() {
		t.Error("IsAccumulator mismatch")
	}
	if !FrameLoc(-8).IsLocalSlot() || FrameLoc(16).IsLocalSlot() {
		t.Error("IsLocalSlot mismatch")
	}
}

func TestStorageFindShadowing(t *testing.T) {
	s := NewStorageTable()
	s.Record("x", FrameLoc(-8), InvalidValue, false)
	s.Record("x", FrameLoc(-16), InvalidValue, false)

	b, ok := s.FindVar("x")
	if !ok || b.Loc != FrameLoc(-16) {
		t.Errorf("latest binding should win, got %+v", b)
	}
	if _, ok := s.FindVar("y"); ok {
		t.Error("unexpected binding for y")
	}
}

func TestStorageConstantsMatchByValue(t *testing.T) {
	s := NewStorageTable()
	s.Record("", FrameLoc(-8), 5, true)
	s.Record("x", FrameLoc(-16), InvalidValue, false)

	if b, ok := s.FindConst(5); !ok || b.Loc != FrameLoc(-8) {
		t.Errorf("constant 5 not found: %+v", b)
	}
	if _, ok := s.FindConst(6); ok {
		t.Error("constant 6 should not match")
	}
	// 变量不会被常量查询匹配
	if _, ok := s.FindConst(InvalidValue); ok {
		t.Error("variables must not match constant lookups")
	}
	// 常量不会被变量查询匹配
	if _, ok := s.FindVar(""); ok {
		t.Error("empty name must not match")
	}
}

func TestStorageUpsert(t *testing.T) {
	s := NewStorageTable()
	first := s.Record("a", RegLoc(RDI), InvalidValue, false)

	got := s.Upsert("a", FrameLoc(-8), InvalidValue, false)
	if got != first {
		t.Error("upsert should update the existing binding in place")
	}
	if first.Loc != FrameLoc(-8) {
		t.Errorf("location not updated: %s", first.Loc)
	}
	if s.Len() != 1 {
		t.Errorf("len: got %d, want 1", s.Len())
	}

	s.Upsert("b", FrameLoc(-16), InvalidValue, false)
	if s.Len() != 2 || s.Bindings()[0].Name != "b" {
		t.Error("upsert of a new name should append")
	}
}

func TestFrameCursor(t *testing.T) {
	c := NewFrameCursor()
	if c.Used() != 0 || c.Offset() != -8 {
		t.Fatalf("fresh cursor: used=%d offset=%d", c.Used(), c.Offset())
	}

	prev := 0
	for i := 1; i <= 5; i++ {
		slot := c.AllocateSlot()
		if slot.Kind != LocFrame {
			t.Fatalf("slot kind: %v", slot.Kind)
		}
		if slot.Offset != -8*i {
			t.Errorf("slot %d: got %d, want %d", i, slot.Offset, -8*i)
		}
		if slot.Offset >= prev {
			t.Errorf("offsets must strictly decrease: %d after %d", slot.Offset, prev)
		}
		prev = slot.Offset
		if c.Used() != 8*i {
			t.Errorf("used after %d slots: got %d", i, c.Used())
		}
	}
}
