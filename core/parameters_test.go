package core

import (
	"testing"
	"time"
)

func TestParameters_WithDefaultsKeepsExplicitEmptyValues(t *testing.T) {
	params := Parameters{ParamSPIClass: "", ParamUser: "admin"}
	merged := params.WithDefaults(Parameters{
		ParamSPIClass:   ClassBrowserSPI,
		ParamCodecClass: ClassJSONCodec,
	})

	if value, ok := merged.Lookup(ParamSPIClass); !ok || value != "" {
		t.Fatalf("expected explicit empty spi class to be kept, got %q %v", value, ok)
	}
	if merged.Get(ParamCodecClass) != ClassJSONCodec {
		t.Fatalf("expected missing codec class to be filled")
	}
	if _, ok := params[ParamCodecClass]; ok {
		t.Fatalf("expected receiver to be left untouched")
	}
}

func TestParameters_TypedAccessors(t *testing.T) {
	params := Parameters{
		ParamReadTimeout:    " 5s ",
		ParamConnectTimeout: "soon",
		"flag":              "Yes",
	}
	if got := params.Duration(ParamReadTimeout, time.Second); got != 5*time.Second {
		t.Fatalf("expected parsed duration, got %s", got)
	}
	if got := params.Duration(ParamConnectTimeout, time.Second); got != time.Second {
		t.Fatalf("expected fallback for invalid duration, got %s", got)
	}
	if !params.Bool("flag") || params.Bool("missing") {
		t.Fatalf("unexpected bool parsing")
	}
	if keys := params.Keys(); len(keys) != 3 || keys[0] != ParamConnectTimeout {
		t.Fatalf("expected sorted keys, got %v", keys)
	}

	var nilParams Parameters
	if _, ok := nilParams.Lookup(ParamUser); ok {
		t.Fatalf("expected lookup on nil parameters to miss")
	}
	if len(nilParams.Clone()) != 0 {
		t.Fatalf("expected empty clone")
	}
}
