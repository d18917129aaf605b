package core

import (
	"context"
	"sync/atomic"
)

type fakeSPI struct {
	session *Session
	closed  bool
}

func (*fakeSPI) GetRepositoryInfos(context.Context) ([]RepositoryInfo, error) {
	return []RepositoryInfo{{ID: "repo"}}, nil
}

func (*fakeSPI) GetRepositoryInfo(_ context.Context, repositoryID string) (RepositoryInfo, error) {
	return RepositoryInfo{ID: repositoryID}, nil
}

func (*fakeSPI) GetTypeDefinition(_ context.Context, _ string, typeID string) (TypeDefinition, error) {
	return TypeDefinition{ID: typeID}, nil
}

func (*fakeSPI) ClearRepositoryCache(context.Context, string) error { return nil }

func (s *fakeSPI) Close() error {
	s.closed = true
	return nil
}

type fakeInvoker struct {
	id int64
}

func (*fakeInvoker) Invoke(context.Context, *Session, InvokeRequest) (InvokeResponse, error) {
	return InvokeResponse{StatusCode: 200}, nil
}

type fakeCodec struct{}

func (*fakeCodec) ContentType() string { return "application/test" }

func (*fakeCodec) Encode(any) ([]byte, error) { return []byte("{}"), nil }

func (*fakeCodec) Decode([]byte, any) error { return nil }

type constructorCounts struct {
	spi     atomic.Int64
	invoker atomic.Int64
	codec   atomic.Int64
}

func newTestRegistry(counts *constructorCounts) *ClassRegistry {
	registry := NewClassRegistry()
	_ = registry.RegisterSPI("test.SPI", func(session *Session) (SPI, error) {
		counts.spi.Add(1)
		return &fakeSPI{session: session}, nil
	})
	_ = registry.RegisterHTTPInvoker("test.Invoker", func() (HTTPInvoker, error) {
		return &fakeInvoker{id: counts.invoker.Add(1)}, nil
	})
	_ = registry.RegisterCodec("test.Codec", func() (Codec, error) {
		counts.codec.Add(1)
		return &fakeCodec{}, nil
	})
	return registry
}

func testParameters() Parameters {
	return Parameters{
		ParamBindingType:      "browser",
		ParamSPIClass:         "test.SPI",
		ParamHTTPInvokerClass: "test.Invoker",
		ParamCodecClass:       "test.Codec",
	}
}
