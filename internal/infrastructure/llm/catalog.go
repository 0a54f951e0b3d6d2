package llm

// ModelInfo describes one selectable model of the aggregator.
type ModelInfo struct {
	Key      string `json:"id"`
	ID       string `json:"model_id"`
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Speed    string `json:"speed"`
	Quality  string `json:"quality"`
	Cost     string `json:"cost"`
}

const AutoModel = "auto"

var modelCatalog = []ModelInfo{
	{AutoModel, "openrouter/auto", "Auto-Select Best Model", "Provider chooses the best model automatically", "varies", "excellent", "varies"},
	{"gemini-2.5-flash", "google/gemini-2.0-flash-exp:free", "Gemini 2.5 Flash", "Fast, excellent for UI/UX, free tier available", "fast", "excellent", "free"},
	{"claude-3.5-sonnet", "anthropic/claude-3.5-sonnet", "Claude 3.5 Sonnet", "Modern UI/UX, full pages, complex layouts", "medium", "excellent", "medium"},
	{"gpt-4-turbo", "openai/gpt-4-turbo", "GPT-4 Turbo", "Great all-around, reliable components", "medium", "excellent", "high"},
	{"claude-3-opus", "anthropic/claude-3-opus", "Claude 3 Opus", "Highest quality for complex designs", "slow", "best", "highest"},
	{"llama-3.1-70b", "meta-llama/llama-3.1-70b-instruct", "Llama 3.1 70B", "Fast, good for simple components", "fast", "good", "free"},
	{"mixtral-8x7b", "mistralai/mixtral-8x7b-instruct", "Mixtral 8x7B", "Balanced speed/quality", "fast", "good", "low"},
	{"gpt-4o", "openai/gpt-4o", "GPT-4o", "Latest OpenAI, great for landing pages", "fast", "excellent", "medium"},
}

// Models returns the catalog in display order.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(modelCatalog))
	copy(out, modelCatalog)
	return out
}

func lookupModel(key string) (ModelInfo, bool) {
	for _, m := range modelCatalog {
		if m.Key == key {
			return m, true
		}
	}
	return ModelInfo{}, false
}
