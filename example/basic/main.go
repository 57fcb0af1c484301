package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	docintel "github.com/Prasanthk4/doc-intelligence-platform"
	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

const sampleContent = `This is a sample policy document for a small online store.

Refunds are accepted within thirty days of purchase. The item must be unused
and in its original packaging. Refunds are issued to the original payment
method within five business days of receiving the returned item.

Shipping takes five to seven business days for standard orders. Express
shipping is available for an additional fee and delivers within two days.

Customer support is available on weekdays from nine to five. Questions about
orders, refunds and shipping can be sent to the support address.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	platform, err := docintel.NewPlatform(dbConfig, model.DefaultConfig(), 384)
	if err != nil {
		log.Fatalf("Failed to create platform: %v", err)
	}
	defer platform.Close()

	// Set up the default pipeline (recursive chunking + local embeddings)
	if err := platform.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	// Write the sample document to disk and ingest it
	dir, err := os.MkdirTemp("", "docintel-basic")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "store_policy.txt")
	if err := os.WriteFile(path, []byte(sampleContent), 0644); err != nil {
		log.Fatalf("Failed to write sample document: %v", err)
	}

	fmt.Println("Ingesting document...")
	result, err := platform.Ingest(context.Background(), path)
	if err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}
	fmt.Printf("Indexed %d documents, %d chunks\n", result.NumDocuments, result.NumChunks)

	// Ask a question (requires a running Ollama server with the fast model)
	question := "What is the refund policy?"
	fmt.Printf("\nQuerying: %s\n", question)

	answer, err := platform.Query(context.Background(), question, true)
	if err != nil {
		log.Fatalf("Failed to query: %v", err)
	}

	fmt.Printf("\nAnswer: %s\n", answer.Answer)
	fmt.Printf("Confidence: %s (%.2f) - %s\n", answer.Confidence.Level, answer.Confidence.Score, answer.Confidence.Reason)
	for _, source := range answer.Sources {
		fmt.Printf("\n--- Source %d ---\n", source.Rank)
		fmt.Printf("File: %s (chunk %d)\n", source.Filename, source.ChunkIndex)
		fmt.Printf("Preview: %s\n", source.Preview)
	}

	// The second identical question is answered from the cache
	cached, err := platform.Query(context.Background(), question, true)
	if err != nil {
		log.Fatalf("Failed to query: %v", err)
	}
	fmt.Printf("\nCached answer matches: %v\n", cached.Answer == answer.Answer)

	// Recent query log
	records, err := platform.RecentQueries(context.Background(), 5)
	if err != nil {
		log.Fatalf("Failed to read query log: %v", err)
	}
	fmt.Printf("\nQuery log (%d records):\n", len(records))
	for _, record := range records {
		fmt.Printf("  %s (%d ms, %d sources)\n", record.Question, record.DurationMS, record.NumSources)
	}

	fmt.Println("\nBasic example completed successfully!")
}
