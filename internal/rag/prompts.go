package rag

import (
	"fmt"
	"strings"

	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
)

const askSystemInstruction = "You are a study assistant. Answer strictly from the supplied sources. " +
	"If the sources do not contain the answer, say so explicitly instead of guessing. " +
	"Cite the sources you used by their labels, e.g. [Source 2]."

const studySystemInstruction = "You are a study assistant helping a student work through their own course material."

// buildAskPrompt lays the retrieved chunks out as numbered source blocks.
// Labels are 1-based and match the citation list returned to the caller.
func buildAskPrompt(question string, items []docmodel.RetrievalItem) (string, string) {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "Source %d (%s):\n%s\n\n", i+1, item.DocName, item.Text)
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return askSystemInstruction, b.String()
}

func buildSummarizePrompt(docName string, text string) (string, string) {
	prompt := fmt.Sprintf(
		"Summarize the following document (%s) as concise bullet points. "+
			"Preserve key terms, definitions and dates.\n\n%s", docName, text)
	return studySystemInstruction, prompt
}

func buildFlashcardsPrompt(docName string, text string, count int) (string, string) {
	prompt := fmt.Sprintf(
		"Create exactly %d flashcards from the following document (%s). "+
			"Respond with a single JSON object and nothing else, in this shape: "+
			`{"flashcards":[{"question":"...","answer":"..."}]}`+
			"\n\n%s", count, docName, text)
	return studySystemInstruction, prompt
}

func buildQuizPrompt(docName string, text string, count int) (string, string) {
	prompt := fmt.Sprintf(
		"Create a %d-question multiple-choice quiz from the following document (%s). "+
			"Each question has 4 options and exactly one correct answer. "+
			"Respond with a single JSON object and nothing else, in this shape: "+
			`{"questions":[{"question":"...","options":["...","...","...","..."],"correctIndex":0}]}`+
			"\n\n%s", count, docName, text)
	return studySystemInstruction, prompt
}
