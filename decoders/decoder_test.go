package decoders

import (
	"testing"

	"github.com/ethinspect/mevtrace/mevtypes"
)

type stubDecoder struct{ protocol string }

func (s stubDecoder) Protocol() string { return s.protocol }
func (stubDecoder) IsProtocolAddress(mevtypes.Address) (bool, bool) {
	return false, false
}
func (stubDecoder) IsProtocolEvent(mevtypes.EventLog) bool { return false }
func (stubDecoder) ClassifyCall(*mevtypes.InternalCall) (mevtypes.Classification, bool) {
	return mevtypes.ClassificationUnknown, false
}
func (stubDecoder) DecodeCallAction(*mevtypes.InternalCall, *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	return nil, false
}

func TestRegistry_DecodersPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDecoder{protocol: "A"})
	r.Register(stubDecoder{protocol: "B"})
	r.Register(stubDecoder{protocol: "C"})

	got := r.Decoders()
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("len(Decoders()) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Protocol() != w {
			t.Fatalf("Decoders()[%d].Protocol() = %q, want %q", i, got[i].Protocol(), w)
		}
	}
}

func TestRegistry_DecodersReturnsDefensiveCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDecoder{protocol: "A"})

	got := r.Decoders()
	got[0] = stubDecoder{protocol: "mutated"}

	if r.Decoders()[0].Protocol() != "A" {
		t.Fatalf("mutating the returned slice affected the registry's internal state")
	}
}

func TestRegistry_RegisterAfterFreezePanics(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Register after Freeze to panic")
		}
	}()
	r.Register(stubDecoder{protocol: "late"})
}
