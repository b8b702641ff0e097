package generator

import (
	"fmt"
	"strings"
)

// The prompts pin the output contract hard: a bare JSON array, fixed item
// shape, no prose. Models still wrap replies in fences or chatter sometimes,
// which the parser tolerates.

func buildMCQInstructions(inputText string, count int) string {
	var b strings.Builder
	b.WriteString("You are an assistant that generates multiple-choice questions (MCQs).\n")
	fmt.Fprintf(&b, "Return ONLY a JSON array, no prose, with %d items. Each item MUST be:\n", count)
	b.WriteString(`{
  "stem": "question",
  "choices": ["A","B","C","D"],
  "correct_index": 0,
  "explanation": "optional"
}
`)
	b.WriteString("Constraints:\n")
	b.WriteString("- choices length MUST be 4.\n")
	b.WriteString("- correct_index MUST be 0..3 and match the correct choice.\n")
	b.WriteString("- stems and choices should be concise and academically sound.\n")
	b.WriteString("- Base questions strictly on this input (summarize if needed):\n")
	b.WriteString("\"\"\"\n")
	b.WriteString(inputText)
	b.WriteString("\n\"\"\"")
	return b.String()
}

func buildFlashcardInstructions(inputText string, count int) string {
	var b strings.Builder
	b.WriteString("You are an assistant that generates concise academic flashcards.\n")
	fmt.Fprintf(&b, "Return ONLY a JSON array, no prose, with %d items. Each item MUST be:\n", count)
	b.WriteString(`{
  "term": "short term or concept",
  "answer": "concise definition or explanation",
  "explanation": "optional longer explanation"
}
`)
	b.WriteString("Constraints:\n")
	b.WriteString("- Keep terms brief and academically correct.\n")
	b.WriteString("- Answers should be 1-2 sentences, factual.\n")
	b.WriteString("- Base flashcards strictly on this input (summarize if needed):\n")
	b.WriteString("\"\"\"\n")
	b.WriteString(inputText)
	b.WriteString("\n\"\"\"")
	return b.String()
}
