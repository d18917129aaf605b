package parameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-cmis/core"
)

func TestParse_MapsSectionsAndRawParameters(t *testing.T) {
	params, err := Parse(`
profile = "dev"
read_timeout = "15s"

[binding]
type = "browser"
browser_url = "https://cmis.example.com/browser"
codec_class = ""

[auth]
user = "admin"

[parameters]
"cmis.custom.flag" = "on"
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	expected := map[string]string{
		core.ParamProfileName: "dev",
		core.ParamReadTimeout: "15s",
		core.ParamBindingType: "browser",
		core.ParamBrowserURL:  "https://cmis.example.com/browser",
		core.ParamUser:        "admin",
		"cmis.custom.flag":    "on",
	}
	for key, value := range expected {
		if params[key] != value {
			t.Fatalf("expected %s=%q, got %q", key, value, params[key])
		}
	}
	if value, ok := params.Lookup(core.ParamCodecClass); !ok || value != "" {
		t.Fatalf("expected explicit empty codec class to be kept, got %q %v", value, ok)
	}
	if _, ok := params.Lookup(core.ParamPassword); ok {
		t.Fatalf("expected undefined keys to stay absent")
	}
}

func TestParse_RejectsInvalidTOML(t *testing.T) {
	if _, err := Parse("[binding\ntype ="); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFile_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmis.toml")
	if err := os.WriteFile(path, []byte("[binding]\ntype = \"atompub\"\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	params, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if params[core.ParamBindingType] != "atompub" {
		t.Fatalf("unexpected params %#v", params)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestFromEnv_ReadsSetVariables(t *testing.T) {
	t.Setenv("CMIS_BINDING_TYPE", "browser")
	t.Setenv("CMIS_BROWSER_URL", "http://localhost:8080/browser")
	t.Setenv("CMIS_AUTH_TOKEN", "token-1")

	params, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if params[core.ParamBindingType] != "browser" ||
		params[core.ParamBrowserURL] != "http://localhost:8080/browser" ||
		params[core.ParamAuthToken] != "token-1" {
		t.Fatalf("unexpected params %#v", params)
	}
	if _, ok := params.Lookup(core.ParamUser); ok {
		t.Fatalf("expected unset variables to stay absent")
	}
}

func TestMerge_LaterSourcesWin(t *testing.T) {
	merged := Merge(
		core.Parameters{core.ParamBindingType: "atompub", core.ParamUser: "file"},
		nil,
		core.Parameters{core.ParamBindingType: "browser"},
	)
	if merged[core.ParamBindingType] != "browser" || merged[core.ParamUser] != "file" {
		t.Fatalf("unexpected merge result %#v", merged)
	}
}
