package chat

import "github.com/englearn/backend/internal/domain"

// modelCatalog is the static list of models exposed to clients. The
// upstream accepts any model id, so this is a curated menu, not a gate.
var modelCatalog = []domain.ChatModel{
	{
		ID:            "nousresearch/deephermes-3-mistral-24b-preview:free",
		Name:          "DeepHermes 3 Mistral 24B",
		Description:   "Free general-purpose model, good default for tutoring",
		ContextLength: 32768,
	},
	{
		ID:            "meta-llama/llama-3.3-70b-instruct:free",
		Name:          "Llama 3.3 70B Instruct",
		Description:   "Larger free model with stronger reasoning",
		ContextLength: 65536,
	},
	{
		ID:            "google/gemini-2.0-flash-exp:free",
		Name:          "Gemini 2.0 Flash",
		Description:   "Fast responses, large context window",
		ContextLength: 1048576,
	},
	{
		ID:            "openai/gpt-4o-mini",
		Name:          "GPT-4o mini",
		Description:   "Paid model with consistent conversational quality",
		ContextLength: 128000,
	},
}

// Models returns the static model catalog.
func (s *Service) Models() []domain.ChatModel {
	out := make([]domain.ChatModel, len(modelCatalog))
	copy(out, modelCatalog)
	return out
}
