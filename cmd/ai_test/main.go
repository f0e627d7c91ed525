package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-jobscout-automation/internal/ai"
)

const systemPrompt = `You are a strict recruiting assistant. Score how well the candidate resume fits the job description on a 0-10 scale. Respond with JSON only: {"score": <number>, "reason": "<one sentence>"}`

func main() {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("OPENAI_API_KEY environment variable not set. Please set it to test the judge.")
		return
	}
	model := os.Getenv("JUDGE_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := ai.NewChatClient(apiKey, "https://api.openai.com/v1/chat/completions", 1)

	content := `Resume: Data scientist, 3 years of experience with Python, SQL and ML pipelines.

Job description: We are looking for a Senior Go Backend Developer.
Requirements:
- 3+ years of experience with Go (Golang)
- Experience with Kafka and Redis
- Strong knowledge of PostgreSQL and microservices`

	fmt.Printf("Sending scoring request to %s...\n", model)

	raw, err := client.Invoke(context.Background(), model, systemPrompt, content)
	if err != nil {
		log.Fatalf("Judge call failed: %v", err)
	}

	verdict, err := ai.ParseFitVerdict(raw)
	if err != nil {
		log.Fatalf("Could not parse verdict: %v\nRaw response: %s", err, raw)
	}

	fmt.Printf("\nSuccess! Score: %.1f\nReason: %s\n", verdict.Score, verdict.Reason)
}
