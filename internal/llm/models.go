package llm

// Alias maps let configuration name models by short handles while requests
// go out with full provider IDs. OpenRouter takes namespaced IDs like
// "google/gemini-2.0-flash-exp" directly and has no alias map.
var (
	anthropicAliases = map[string]string{
		"claude-sonnet": "claude-sonnet-4-20250514",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	}

	openaiAliases = map[string]string{
		"gpt-4o":      "gpt-4o",
		"gpt-4o-mini": "gpt-4o-mini",
	}

	geminiAliases = map[string]string{
		"gemini-flash": "gemini-2.0-flash",
		"gemini-pro":   "gemini-2.0-pro",
	}
)

// canonicalModel resolves an alias to a provider model ID. Names not in the
// map pass through unchanged, so exact model IDs keep working.
func canonicalModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
