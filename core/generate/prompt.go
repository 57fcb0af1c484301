package generate

import (
	"fmt"
	"strings"
)

const (
	// maxSummaryInput bounds the document text passed to the summary prompt.
	maxSummaryInput = 4000

	// compareSampleChunks and maxCompareSample bound the per-document
	// sample used in comparison prompts, keeping the combined prompt
	// within roughly 4000 characters of document text.
	compareSampleChunks = 3
	maxCompareSample    = 2000
)

// DefaultCompareAspect is used when the caller does not name an aspect.
const DefaultCompareAspect = "general content"

// AnswerPrompt builds the grounded Q&A prompt. Context passages are
// numbered so the model can cite them as [Source N], matching the ranks in
// the returned source descriptors.
func AnswerPrompt(question string, contexts []string) string {
	numbered := make([]string, 0, len(contexts))
	for i, ctx := range contexts {
		numbered = append(numbered, fmt.Sprintf("[Source %d]: %s", i+1, ctx))
	}

	return fmt.Sprintf(`You are a helpful AI assistant that answers questions based on the provided context.

Context:
%s

Question: %s

Instructions:
- Answer the question using ONLY the information from the context above
- If the answer is not in the context, say "I cannot find this information in the provided documents"
- Cite the source numbers [Source 1], [Source 2], etc. when referencing information
- Be concise and accurate

Answer:`, strings.Join(numbered, "\n\n"), question)
}

// SummaryPrompt builds a summarization prompt over at most the first
// maxSummaryInput characters of text.
func SummaryPrompt(text string) string {
	if runes := []rune(text); len(runes) > maxSummaryInput {
		text = string(runes[:maxSummaryInput])
	}

	return fmt.Sprintf(`Summarize the following document in a concise manner. Focus on the key points and main ideas.

Document:
%s

Summary:`, text)
}

// ComparePrompt builds a prompt comparing two documents along an aspect,
// using a bounded sample of each document's leading chunks. An empty
// aspect falls back to DefaultCompareAspect.
func ComparePrompt(name1 string, chunks1 []string, name2 string, chunks2 []string, aspect string) string {
	if aspect == "" {
		aspect = DefaultCompareAspect
	}

	return fmt.Sprintf(`Compare the following two documents on the aspect: %s

Document 1 (%s):
%s

Document 2 (%s):
%s

Provide a detailed comparison highlighting:
1. Similarities
2. Differences
3. Key insights

Comparison:`, aspect, name1, sample(chunks1), name2, sample(chunks2))
}

// sample joins a document's first chunks and truncates the result.
func sample(chunks []string) string {
	if len(chunks) > compareSampleChunks {
		chunks = chunks[:compareSampleChunks]
	}
	text := strings.Join(chunks, " ")
	if runes := []rune(text); len(runes) > maxCompareSample {
		text = string(runes[:maxCompareSample])
	}
	return text
}
