package llm

import "strings"

// OpenRouter model ids are slugs of the form vendor/model with an optional
// variant suffix after a colon, e.g.
// "mistralai/mistral-small-3.2-24b-instruct:free".
const (
	slugSeparator    = "/"
	variantSeparator = ":"
)

// ResolveModelID expands a config alias into a routable OpenRouter slug.
// Already-qualified ids pass through untouched, so callers may hand over
// either an alias or a full slug.
func ResolveModelID(alias string, cfg ModelConfig) string {
	model := strings.TrimSpace(alias)
	if strings.Contains(model, slugSeparator) {
		return model
	}

	name := strings.TrimSpace(cfg.ModelName)
	if name == "" {
		name = model
	}
	if strings.Contains(name, slugSeparator) {
		return name
	}

	vendor := strings.TrimSpace(cfg.Provider)
	if vendor == "" {
		return name
	}
	return vendor + slugSeparator + name
}

// ParseModelID splits a slug into its vendor and model parts; the variant
// suffix stays attached to the model part. Unqualified ids yield an empty
// vendor.
func ParseModelID(model string) (vendor, name string) {
	vendor, name, found := strings.Cut(model, slugSeparator)
	if !found {
		return "", model
	}
	return vendor, name
}

// ModelVariant returns the routing variant of a slug ("free", "nitro", ...)
// or the empty string for standard routing.
func ModelVariant(model string) string {
	_, variant, found := strings.Cut(model, variantSeparator)
	if !found {
		return ""
	}
	return variant
}
