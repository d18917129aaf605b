package core

import "strings"

// BindingType enumerates the protocol bindings the client knows about. The
// set is stable even when a build wires only some of them.
type BindingType string

const (
	BindingTypeBrowser     BindingType = "browser"
	BindingTypeAtomPub     BindingType = "atompub"
	BindingTypeWebServices BindingType = "webservices"
	BindingTypeCustom      BindingType = "custom"
)

var bindingTypeAliases = map[string]BindingType{
	"web-services": BindingTypeWebServices,
}

func BindingTypes() []BindingType {
	return []BindingType{
		BindingTypeBrowser,
		BindingTypeAtomPub,
		BindingTypeWebServices,
		BindingTypeCustom,
	}
}

func (t BindingType) String() string {
	return string(t)
}

func (t BindingType) Valid() bool {
	switch t {
	case BindingTypeBrowser, BindingTypeAtomPub, BindingTypeWebServices, BindingTypeCustom:
		return true
	default:
		return false
	}
}

// ParseBindingType matches raw against the enumeration ignoring case and
// surrounding whitespace. The returned error keeps raw untouched.
func ParseBindingType(raw string) (BindingType, error) {
	normalized := strings.TrimSpace(strings.ToLower(raw))
	if alias, ok := bindingTypeAliases[normalized]; ok {
		return alias, nil
	}
	candidate := BindingType(normalized)
	if !candidate.Valid() {
		return "", InvalidBindingTypeError(raw)
	}
	return candidate, nil
}
