package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	docintel "github.com/Prasanthk4/doc-intelligence-platform"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

const returnPolicy = `Return and Refund Policy

Items can be returned within thirty days of delivery. Returned items must be
unused and in their original packaging. Once the return is received, the
refund is issued to the original payment method within five business days.

Sale items are final and cannot be returned. Damaged items are replaced free
of charge when reported within one week of delivery.`

const shippingPolicy = `Shipping Policy

Standard shipping takes five to seven business days within the country.
International orders take two to four weeks depending on the destination.

Express shipping delivers within two business days for an additional fee.
All orders above one hundred dollars ship free of charge.`

func main() {
	// A local platform persists its index under the data directory and
	// needs no database.
	config := model.DefaultConfig()
	config.DataDir = "./data"
	config.Model = model.Models["deep"].Name

	platform, err := docintel.NewLocalPlatform(config, 384)
	if err != nil {
		log.Fatalf("Failed to create platform: %v", err)
	}
	defer platform.Close()

	if err := platform.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	// Write the sample documents to disk and ingest them
	dir, err := os.MkdirTemp("", "docintel-advanced")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	paths := make([]string, 0, 2)
	for name, content := range map[string]string{
		"return_policy.md":   returnPolicy,
		"shipping_policy.md": shippingPolicy,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			log.Fatalf("Failed to write sample document: %v", err)
		}
		paths = append(paths, path)
	}

	fmt.Println("Ingesting documents...")
	result, err := platform.Ingest(context.Background(), paths...)
	if err != nil {
		log.Fatalf("Failed to ingest documents: %v", err)
	}
	fmt.Printf("Indexed %d documents, %d chunks\n", result.NumDocuments, result.NumChunks)

	ctx := context.Background()

	// Summarize one document (requires a running Ollama server)
	fmt.Println("\nSummarizing return_policy.md...")
	summary, err := platform.SummarizeDocument(ctx, "return_policy.md")
	if err != nil {
		log.Fatalf("Failed to summarize: %v", err)
	}
	fmt.Printf("Summary: %s\n", summary)

	// Compare the two documents with respect to timelines
	fmt.Println("\nComparing documents...")
	comparison, err := platform.CompareDocuments(ctx, "return_policy.md", "shipping_policy.md", "timelines and deadlines")
	if err != nil {
		log.Fatalf("Failed to compare: %v", err)
	}
	fmt.Printf("Comparison: %s\n", comparison)

	// Switch to the fast model for quick follow-up questions
	if err := platform.SetModel(model.Models["fast"].Name); err != nil {
		log.Fatalf("Failed to switch model: %v", err)
	}

	answer, err := platform.Query(ctx, "How long does standard shipping take?", true)
	if err != nil {
		log.Fatalf("Failed to query: %v", err)
	}
	fmt.Printf("\nAnswer: %s\n", answer.Answer)
	fmt.Printf("Confidence: %s (%.2f)\n", answer.Confidence.Level, answer.Confidence.Score)

	// Platform statistics including per-phase timings
	stats, err := platform.Stats(ctx)
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	fmt.Printf("\nStats: %d documents, %d chunks, model %s\n", stats.NumDocuments, stats.NumChunks, stats.Model)
	fmt.Printf("Cache: %d/%d entries\n", stats.Cache.Size, stats.Cache.Capacity)
	for phase, metrics := range stats.Performance {
		if metrics.Count == 0 {
			continue
		}
		fmt.Printf("  %s: avg %s over %d runs\n", phase, metrics.Avg, metrics.Count)
	}

	fmt.Println("\nAdvanced example completed successfully!")
}
