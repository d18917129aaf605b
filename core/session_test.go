package core

import "testing"

func TestSession_ParametersAreClonedOnEntryAndExit(t *testing.T) {
	params := testParameters()
	session := NewSession(params)

	params[ParamSPIClass] = "mutated"
	if got := session.Parameter(ParamSPIClass); got != "test.SPI" {
		t.Fatalf("expected session to keep its own parameter copy, got %q", got)
	}

	snapshot := session.Parameters()
	snapshot[ParamCodecClass] = "mutated"
	if got := session.Parameter(ParamCodecClass); got != "test.Codec" {
		t.Fatalf("expected Parameters() to return a copy, got %q", got)
	}
}

func TestSession_UsesConfiguredIDOrGeneratesOne(t *testing.T) {
	session := NewSession(Parameters{ParamSessionID: "session-1"})
	if session.ID() != "session-1" {
		t.Fatalf("expected configured session id, got %q", session.ID())
	}
	generated := NewSession(Parameters{})
	if generated.ID() == "" {
		t.Fatalf("expected generated session id")
	}
}

func TestSession_GetAndPut(t *testing.T) {
	session := NewSession(testParameters())

	raw, ok := session.Get(ParamBindingType)
	if !ok || raw != "browser" {
		t.Fatalf("expected parameter lookup through Get, got %v", raw)
	}
	if _, ok := session.Get("unknown"); ok {
		t.Fatalf("expected unknown key to be absent")
	}
	if err := session.Put("custom", 42); err != nil {
		t.Fatalf("put custom value: %v", err)
	}
	if value, ok := session.Get("custom"); !ok || value != 42 {
		t.Fatalf("expected stored custom value, got %v", value)
	}

	if err := session.Put(SlotCodec, "not a codec"); err == nil {
		t.Fatalf("expected slot type mismatch error")
	}
	codec := &fakeCodec{}
	if err := session.Put(SlotCodec, codec); err != nil {
		t.Fatalf("seed codec slot: %v", err)
	}
	if value, ok := session.Get(SlotCodec); !ok || value != codec {
		t.Fatalf("expected seeded codec in slot")
	}
}

func TestSession_SeededSlotIsReturnedWithoutConstruction(t *testing.T) {
	counts := &constructorCounts{}
	resolver := NewResolver(newTestRegistry(counts))
	session := NewSession(testParameters(), WithSessionResolver(resolver))

	seeded := &fakeCodec{}
	if err := session.Put(SlotCodec, seeded); err != nil {
		t.Fatalf("seed codec: %v", err)
	}
	resolved, err := session.Codec()
	if err != nil {
		t.Fatalf("resolve codec: %v", err)
	}
	if resolved != seeded {
		t.Fatalf("expected seeded codec instance")
	}
	if counts.codec.Load() != 0 {
		t.Fatalf("expected no codec construction")
	}
}

func TestSession_ResetDropsCollaborators(t *testing.T) {
	counts := &constructorCounts{}
	resolver := NewResolver(newTestRegistry(counts))
	session := NewSession(testParameters(), WithSessionResolver(resolver))

	spi, err := session.SPI()
	if err != nil {
		t.Fatalf("resolve spi: %v", err)
	}
	if _, err := session.HTTPInvoker(); err != nil {
		t.Fatalf("resolve invoker: %v", err)
	}

	dropped := session.Reset()
	if dropped != spi {
		t.Fatalf("expected reset to return the cached spi")
	}
	if _, ok := session.Get(SlotHTTPInvoker); ok {
		t.Fatalf("expected invoker slot to be empty after reset")
	}
	again, err := session.SPI()
	if err != nil {
		t.Fatalf("resolve spi after reset: %v", err)
	}
	if again == spi {
		t.Fatalf("expected a new spi after reset")
	}
	if counts.spi.Load() != 2 {
		t.Fatalf("expected two spi constructions, got %d", counts.spi.Load())
	}
	if session.Parameter(ParamSPIClass) != "test.SPI" {
		t.Fatalf("expected parameters to survive reset")
	}
}
