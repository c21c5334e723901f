package mevtypes

import "testing"

func TestTraceAddress_IsAncestorOf(t *testing.T) {
	cases := []struct {
		name   string
		t, o   TraceAddress
		expect bool
	}{
		{"root is ancestor of child", TraceAddress{}, TraceAddress{0}, true},
		{"root is ancestor of deep descendant", TraceAddress{}, TraceAddress{0, 1, 2}, true},
		{"sibling is not ancestor", TraceAddress{0}, TraceAddress{1}, false},
		{"equal addresses are not ancestors", TraceAddress{0, 1}, TraceAddress{0, 1}, false},
		{"child is not ancestor of parent", TraceAddress{0, 1}, TraceAddress{0}, false},
		{"divergent prefix", TraceAddress{0, 1}, TraceAddress{0, 2, 3}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.t.IsAncestorOf(c.o); got != c.expect {
				t.Fatalf("%v.IsAncestorOf(%v) = %v, want %v", c.t, c.o, got, c.expect)
			}
		})
	}
}

func TestTraceAddress_Equal(t *testing.T) {
	if !(TraceAddress{0, 1}).Equal(TraceAddress{0, 1}) {
		t.Fatalf("expected equal trace addresses to compare equal")
	}
	if (TraceAddress{0, 1}).Equal(TraceAddress{0, 2}) {
		t.Fatalf("expected differing trace addresses to compare unequal")
	}
	if (TraceAddress{0}).Equal(TraceAddress{0, 0}) {
		t.Fatalf("expected differing lengths to compare unequal")
	}
}

func TestTraceAddress_String(t *testing.T) {
	if got := (TraceAddress{}).String(); got != "root" {
		t.Fatalf("String() = %q, want %q", got, "root")
	}
	if got := (TraceAddress{0, 2, 1}).String(); got != "0.2.1" {
		t.Fatalf("String() = %q, want %q", got, "0.2.1")
	}
}

func TestInternalCall_Selector(t *testing.T) {
	short := &InternalCall{Input: []byte{1, 2, 3}}
	if sel := short.Selector(); sel != nil {
		t.Fatalf("Selector() = %v, want nil for input shorter than 4 bytes", sel)
	}
	full := &InternalCall{Input: []byte{0xa9, 0x05, 0x9c, 0xbb, 0xff}}
	if sel := full.Selector(); len(sel) != 4 {
		t.Fatalf("Selector() = %v, want 4 bytes", sel)
	}
}

func TestInternalCall_Succeeded(t *testing.T) {
	ok := &InternalCall{Status: CallStatusSuccess}
	reverted := &InternalCall{Status: CallStatusReverted}
	if !ok.Succeeded() {
		t.Fatalf("expected CallStatusSuccess to report Succeeded")
	}
	if reverted.Succeeded() {
		t.Fatalf("expected CallStatusReverted to report not Succeeded")
	}
}
