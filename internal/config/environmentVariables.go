package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //completion calls can be slow
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//uploads
	MaxUploadFiles     = 10
	MaxUploadFileBytes = 20 << 20 //20mb per file
	TempUploadDir      = "temporary_data"

	//model providers
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	OpenAIChatModel      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	ModelTemperature float32 = 0.2

	EmbeddingOutputDimensionality int32 = 1536

	//pdf extraction subprocess
	PdfExtractTimeout = 30 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
)

// Tunables are the knobs of the ingestion/retrieval pipeline. An optional
// yaml file pointed at by SCHOLARAI_CONFIG overrides the defaults.
type Tunables struct {
	ChunkWindow          int   `yaml:"chunk_window"`
	ChunkOverlap         int   `yaml:"chunk_overlap"`
	MaxChunksPerDocument int   `yaml:"max_chunks_per_document"`
	MaxDocumentChars     int   `yaml:"max_document_chars"`
	MaxStoreBytes        int64 `yaml:"max_store_bytes"`
	RetrievalChunkLimit  int   `yaml:"retrieval_chunk_limit"`
	EmbeddingBatchSize   int   `yaml:"embedding_batch_size"`
	EmbeddingFanOut      int   `yaml:"embedding_fan_out"`
	DefaultTopK          int   `yaml:"default_top_k"`
	SummaryCharLimit     int   `yaml:"summary_char_limit"`
	CardSourceCharLimit  int   `yaml:"card_source_char_limit"`
	DefaultCardCount     int   `yaml:"default_card_count"`
	QuizQuestionCount    int   `yaml:"quiz_question_count"`
}

var Pipeline = Tunables{
	ChunkWindow:          3000,
	ChunkOverlap:         200,
	MaxChunksPerDocument: 300,
	MaxDocumentChars:     900_000,
	MaxStoreBytes:        64 << 20,
	RetrievalChunkLimit:  800,
	EmbeddingBatchSize:   64,
	EmbeddingFanOut:      4,
	DefaultTopK:          6,
	SummaryCharLimit:     100_000,
	CardSourceCharLimit:  12_000,
	DefaultCardCount:     5,
	QuizQuestionCount:    5,
}

// Load reads .env (if present) and the optional yaml tunables file. Called
// once from main before anything touches the env-backed getters.
func Load(logError func(msg string, args ...any)) {
	_ = godotenv.Load()

	path := os.Getenv("SCHOLARAI_CONFIG")
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logError("Could not read tunables file", "path", path, "error", err)
		return
	}
	overrides := Pipeline
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		logError("Could not parse tunables file", "path", path, "error", err)
		return
	}
	Pipeline = overrides
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// ModelProvider selects which embedding/completion backend gets wired in.
func ModelProvider() string {
	if p := os.Getenv("SCHOLARAI_PROVIDER"); p != "" {
		return p
	}
	return ProviderOpenAI
}

// DataFilePath is where the document store file lives.
func DataFilePath() string {
	if p := os.Getenv("SCHOLARAI_DATA_FILE"); p != "" {
		return p
	}
	return "scholarai_store.json"
}
