package model

// ModelPreset describes a named generation model configuration.
type ModelPreset struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	UseCase     string `json:"use_case"`
}

// Models holds the selectable generation presets.
var Models = map[string]ModelPreset{
	"fast": {
		Name:        "llama3.2:3b",
		DisplayName: "Fast Mode (Llama 3.2 3B)",
		Description: "Quick responses, good accuracy",
		UseCase:     "General Q&A, simple queries",
	},
	"deep": {
		Name:        "mistral:7b",
		DisplayName: "Deep Analysis (Mistral 7B)",
		Description: "Slower but more accurate",
		UseCase:     "Complex analysis, multi-document comparison",
	},
}

// Config holds the tunable parameters of the query pipeline.
type Config struct {
	// Chunking parameters
	ChunkSize    int `json:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap"`

	// Retrieval parameters
	TopK int `json:"top_k"`

	// Query cache capacity (entries)
	CacheSize int `json:"cache_size"`

	// Directory for locally persisted index data
	DataDir string `json:"data_dir"`

	// Generation service
	OllamaURL string `json:"ollama_url"`
	Model     string `json:"model"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		TopK:         5,
		CacheSize:    100,
		DataDir:      "./data",
		OllamaURL:    "http://localhost:11434",
		Model:        Models["fast"].Name,
	}
}
