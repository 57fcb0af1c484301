package docintel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Prasanthk4/doc-intelligence-platform/core/cache"
	"github.com/Prasanthk4/doc-intelligence-platform/core/confidence"
	"github.com/Prasanthk4/doc-intelligence-platform/core/extract"
	"github.com/Prasanthk4/doc-intelligence-platform/core/generate"
	"github.com/Prasanthk4/doc-intelligence-platform/core/pipeline"
	"github.com/Prasanthk4/doc-intelligence-platform/core/retrieval"
	"github.com/Prasanthk4/doc-intelligence-platform/database"
	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
	"github.com/Prasanthk4/doc-intelligence-platform/perf"
	loadSql "github.com/Prasanthk4/doc-intelligence-platform/sql"
)

// Platform provides a unified interface to document ingestion,
// retrieval and question answering.
type Platform struct {
	DB        *helper.Database
	Entries   *database.EntriesDBHandler
	Queries   *database.QueriesDBHandler
	Pipeline  *pipeline.Pipeline // Optional chunking and embedding pipeline
	Generator generate.Generator // Answer generation backend
	Engine    *retrieval.Engine  // Retrieval engine over the vector index
	Cache     *cache.QueryCache
	Scorer    *confidence.Scorer
	Tracker   *perf.Tracker
	// Logging
	log       *slog.Logger
	config    model.Config
	dimension int
}

// Stats summarizes the current state of the platform.
type Stats struct {
	NumDocuments int
	NumChunks    int
	Dimension    int
	Model        string
	Cache        cache.Stats
	Performance  map[perf.Phase]perf.Metrics
}

// NewPlatform creates a new Platform instance backed by a pgvector database.
// The embedding dimension must match the embedder configured later via
// SetPipeline or UseDefaultPipeline.
func NewPlatform(dbConfig *helper.DatabaseConfiguration, config model.Config, embeddingDim int) (*Platform, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("docintel", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	entries, err := database.NewEntriesDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create entries handler", err)
	}

	queries, err := database.NewQueriesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create queries handler", err)
	}

	platform, err := newPlatform(entries, config, embeddingDim, logger)
	if err != nil {
		return nil, err
	}
	platform.DB = db
	platform.Entries = entries
	platform.Queries = queries

	return platform, nil
}

// NewLocalPlatform creates a new Platform instance backed by an in-memory
// vector index persisted under the configured data directory. It needs no
// database and is suited for single-process use.
func NewLocalPlatform(config model.Config, embeddingDim int) (*Platform, error) {
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	index, err := retrieval.NewPersistentMemoryIndex(embeddingDim, config.DataDir)
	if err != nil {
		return nil, helper.NewError("create local index", err)
	}

	return newPlatform(index, config, embeddingDim, logger)
}

func newPlatform(index retrieval.Index, config model.Config, embeddingDim int, logger *slog.Logger) (*Platform, error) {
	queryCache, err := cache.NewQueryCache(config.CacheSize)
	if err != nil {
		return nil, helper.NewError("create query cache", err)
	}

	generator, err := generate.NewOllamaGenerator(config.OllamaURL, config.Model)
	if err != nil {
		return nil, helper.NewError("create generator", err)
	}

	return &Platform{
		Generator: generator,
		Engine:    retrieval.NewEngine(index),
		Cache:     queryCache,
		Scorer:    confidence.NewScorer(),
		Tracker:   perf.NewTracker(),
		log:       logger,
		config:    config,
		dimension: embeddingDim,
	}, nil
}

// Close closes the database connection and the embedder if one is set.
func (p *Platform) Close() error {
	if p.Pipeline != nil {
		if closer, ok := p.Pipeline.Embedder.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				return helper.NewError("close embedder", err)
			}
		}
	}
	if p.DB != nil && p.DB.Instance != nil {
		return p.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the chunking and embedding pipeline for document processing
func (p *Platform) SetPipeline(pipeline *pipeline.Pipeline) {
	p.Pipeline = pipeline
}

// SetGenerator replaces the answer generation backend
func (p *Platform) SetGenerator(generator generate.Generator) {
	p.Generator = generator
}

// UseDefaultPipeline sets up the default chunking and embedding pipeline.
// This uses RecursiveChunker with the configured chunk size and overlap,
// and a local embedder with the all-MiniLM-L6-v2 model (384 dimensions).
func (p *Platform) UseDefaultPipeline() error {
	chunker := pipeline.RecursiveChunker(p.config.ChunkSize, p.config.ChunkOverlap)

	embedder, err := pipeline.NewLocalEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	if embedder.Dimension() != p.dimension {
		return helper.NewError("validate embedder",
			fmt.Errorf("%w: embedder dimension %d, index expects %d", model.ErrInvalidInput, embedder.Dimension(), p.dimension))
	}

	p.Pipeline = pipeline.NewPipeline(chunker, embedder)
	return nil
}

// SetModel switches the generation model, e.g. between the fast and
// deep presets in model.Models.
func (p *Platform) SetModel(name string) error {
	return p.Generator.SetModel(name)
}

// Ingest extracts, chunks, embeds and indexes the given files.
// Files that fail to extract are skipped and logged, so one bad file
// does not abort the batch. Processing failures such as an unreachable
// embedding service abort the batch and are returned to the caller.
// Returns a summary of what was indexed.
func (p *Platform) Ingest(ctx context.Context, paths ...string) (*model.IngestResult, error) {
	if p.Pipeline == nil {
		return nil, helper.NewError("ingest documents", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	result := &model.IngestResult{}
	for _, path := range paths {
		filename := filepath.Base(path)

		text, err := extract.Extract(path)
		if err != nil {
			p.log.Warn("Skipping file, extraction failed", slog.String("file", filename), slog.String("error", err.Error()))
			continue
		}

		chunks, err := p.Pipeline.Process(text, filename)
		if err != nil {
			return result, helper.NewError(fmt.Sprintf("process %s", filename), err)
		}
		if len(chunks) == 0 {
			p.log.Warn("Skipping file, no content", slog.String("file", filename))
			continue
		}

		err = p.Engine.Index().Upsert(ctx, chunks)
		if err != nil {
			return result, helper.NewError(fmt.Sprintf("index %s", filename), err)
		}

		doc := &model.Document{
			Filename:  filename,
			Text:      text,
			NumChunks: len(chunks),
		}
		for _, chunk := range chunks {
			doc.Chunks = append(doc.Chunks, chunk.Content)
		}

		result.NumDocuments++
		result.NumChunks += len(chunks)
		result.Filenames = append(result.Filenames, filename)
		result.Documents = append(result.Documents, doc)

		p.log.Info("Indexed document", slog.String("file", filename), slog.Int("num_chunks", len(chunks)))
	}

	return result, nil
}

// Query answers a question from the indexed documents.
// With useCache, answers are cached by normalized question text and a
// cache hit skips retrieval and generation but still gets a fresh
// confidence score. Without it the cache is neither consulted nor
// updated, forcing a full retrieval and generation pass.
func (p *Platform) Query(ctx context.Context, question string, useCache bool) (*model.QueryResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, helper.NewError("validate question", fmt.Errorf("%w: empty question", model.ErrInvalidInput))
	}
	if p.Pipeline == nil {
		return nil, helper.NewError("answer question", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	start := time.Now()

	if useCache {
		if cached, ok := p.Cache.Get(question); ok {
			p.log.Info("Answered from cache", slog.String("question", question))
			conf := p.Scorer.Score(cached.Sources, cached.Answer)
			p.Tracker.Track(perf.PhaseQuery, time.Since(start))
			p.logQuery(ctx, question, time.Since(start), len(cached.Sources))
			return &model.QueryResult{
				Answer:     cached.Answer,
				Sources:    cached.Sources,
				Confidence: conf,
			}, nil
		}
	}

	var embedding []float32
	err := p.Tracker.Measure(perf.PhaseEmbedding, func() error {
		var err error
		embedding, err = p.Pipeline.Embedder.Embed(question)
		return err
	})
	if err != nil {
		return nil, helper.NewError("embed question", err)
	}

	var chunks []*model.Chunk
	err = p.Tracker.Measure(perf.PhaseRetrieval, func() error {
		var err error
		chunks, err = p.Engine.Retrieve(ctx, embedding, p.config.TopK)
		return err
	})
	if err != nil {
		return nil, err
	}

	prompt := generate.AnswerPrompt(question, retrieval.Contexts(chunks))

	var answer string
	err = p.Tracker.Measure(perf.PhaseGeneration, func() error {
		var err error
		answer, err = p.Generator.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return nil, helper.NewError("generate answer", err)
	}

	sources := retrieval.Sources(chunks)
	if useCache {
		p.Cache.Set(question, model.CachedAnswer{Answer: answer, Sources: sources})
	}
	conf := p.Scorer.Score(sources, answer)

	duration := time.Since(start)
	p.Tracker.Track(perf.PhaseQuery, duration)
	p.logQuery(ctx, question, duration, len(sources))

	p.log.Info("Answered question",
		slog.String("question", question),
		slog.Int("num_sources", len(sources)),
		slog.Float64("confidence", conf.Score),
		slog.Duration("duration", duration),
	)

	return &model.QueryResult{
		Answer:     answer,
		Sources:    sources,
		Confidence: conf,
	}, nil
}

// logQuery records the answered question in the query log when one is
// configured. Failures are logged and do not fail the query.
func (p *Platform) logQuery(ctx context.Context, question string, duration time.Duration, numSources int) {
	if p.Queries == nil {
		return
	}

	err := p.Queries.InsertQuery(ctx, &model.QueryRecord{
		Question:   question,
		DurationMS: duration.Milliseconds(),
		NumSources: numSources,
	})
	if err != nil {
		p.log.Warn("Failed to record query", slog.String("error", err.Error()))
	}
}

// CompareDocuments generates a comparison of two indexed documents with
// respect to the given aspect. An empty aspect compares general content.
func (p *Platform) CompareDocuments(ctx context.Context, filename1 string, filename2 string, aspect string) (string, error) {
	chunks1, err := p.Engine.Index().ByFilename(ctx, filename1)
	if err != nil {
		return "", helper.NewError("load first document", err)
	}
	if len(chunks1) == 0 {
		return "", helper.NewError("load first document", fmt.Errorf("%w: %s", model.ErrNotFound, filename1))
	}

	chunks2, err := p.Engine.Index().ByFilename(ctx, filename2)
	if err != nil {
		return "", helper.NewError("load second document", err)
	}
	if len(chunks2) == 0 {
		return "", helper.NewError("load second document", fmt.Errorf("%w: %s", model.ErrNotFound, filename2))
	}

	prompt := generate.ComparePrompt(
		filename1, chunkContents(chunks1),
		filename2, chunkContents(chunks2),
		aspect,
	)

	comparison, err := p.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", helper.NewError("generate comparison", err)
	}

	return comparison, nil
}

// SummarizeDocument generates a summary of one indexed document.
func (p *Platform) SummarizeDocument(ctx context.Context, filename string) (string, error) {
	chunks, err := p.Engine.Index().ByFilename(ctx, filename)
	if err != nil {
		return "", helper.NewError("load document", err)
	}
	if len(chunks) == 0 {
		return "", helper.NewError("load document", fmt.Errorf("%w: %s", model.ErrNotFound, filename))
	}

	prompt := generate.SummaryPrompt(strings.Join(chunkContents(chunks), "\n\n"))

	summary, err := p.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", helper.NewError("generate summary", err)
	}

	return summary, nil
}

// Documents lists the indexed documents in first-seen order.
func (p *Platform) Documents(ctx context.Context) ([]string, error) {
	return p.Engine.Index().Filenames(ctx)
}

// RecentQueries returns the most recent query log records, newest first.
// Only available on database-backed platforms.
func (p *Platform) RecentQueries(ctx context.Context, limit int) ([]*model.QueryRecord, error) {
	if p.Queries == nil {
		return nil, helper.NewError("recent queries", fmt.Errorf("query log requires a database-backed platform"))
	}
	return p.Queries.SelectRecentQueries(ctx, limit)
}

// Stats returns a summary of the indexed corpus, cache and performance.
func (p *Platform) Stats(ctx context.Context) (*Stats, error) {
	numChunks, err := p.Engine.Index().Count(ctx)
	if err != nil {
		return nil, helper.NewError("count entries", err)
	}

	filenames, err := p.Engine.Index().Filenames(ctx)
	if err != nil {
		return nil, helper.NewError("list filenames", err)
	}

	return &Stats{
		NumDocuments: len(filenames),
		NumChunks:    numChunks,
		Dimension:    p.dimension,
		Model:        p.Generator.Model(),
		Cache:        p.Cache.Stats(),
		Performance:  p.Tracker.Metrics(),
	}, nil
}

// Clear removes all indexed documents, cached answers, performance
// metrics and query log records.
func (p *Platform) Clear(ctx context.Context) error {
	err := p.Engine.Index().Clear(ctx)
	if err != nil {
		return helper.NewError("clear index", err)
	}

	p.Cache.Clear()
	p.Tracker.Reset()

	if p.Queries != nil {
		err = p.Queries.ClearQueries(ctx)
		if err != nil {
			return helper.NewError("clear query log", err)
		}
	}

	p.log.Info("Cleared all indexed documents and cached state")

	return nil
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat.
// Only available on database-backed platforms.
func (p *Platform) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	if p.Entries == nil {
		return helper.NewError("change index type", fmt.Errorf("index tuning requires a database-backed platform"))
	}
	return p.Entries.ChangeIndexType(ctx, indexType, params)
}

func chunkContents(chunks []*model.Chunk) []string {
	contents := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		contents = append(contents, chunk.Content)
	}
	return contents
}
