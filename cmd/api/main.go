// @title           ScholarAI API
// @version         1.0
// @description     Document ingestion plus retrieval-augmented ask, summarize, flashcards and quiz endpoints
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/handlers"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/embedding"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/embedding/googleEmbedding"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/embedding/openaiEmbedding"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/llm"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/llm/gemini"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/llm/openaiLLM"
	"github.com/zacharyjolliff15/ScholarAI/internal/server"
	"github.com/zacharyjolliff15/ScholarAI/internal/store"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	config.Load(logger.Warn)
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	docStore := store.New(config.DataFilePath())

	embeddingService, llmProvider := initProviders(serviceContext)
	if embeddingService == nil || llmProvider == nil {
		// Upload and ask report the missing credential per request; list,
		// delete and health still work.
		logger.Error("Model provider not configured", "provider", config.ModelProvider(),
			"EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
	}

	ragService := rag.NewService(docStore, llmProvider, embeddingService)
	handlers.InitHandlers(ragService, docStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func initProviders(ctx context.Context) (embedding.Embedder, llm.Provider) {
	if config.ModelProvider() == config.ProviderGemini {
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GeminiAPIKey()),
			gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GeminiAPIKey())
	}
	return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey()),
		openaiLLM.GetOpenAIClient(config.OpenAIChatModel, config.OpenAIAPIKey())
}
