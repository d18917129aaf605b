package parameters

import "github.com/goliatone/go-cmis/core"

// Merge layers sources left to right; a key set by a later source wins.
func Merge(sources ...core.Parameters) core.Parameters {
	out := core.Parameters{}
	for _, source := range sources {
		for key, value := range source {
			out[key] = value
		}
	}
	return out
}
