// Package enrich runs scraped postings through an LLM to validate them
// and fill in the AI fields (summary, skills, remote type, experience
// level).
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"remoteboard-engine/internal/domain"
)

// Result is what the model reports for one posting. Valid=false marks a
// listing that is not a real remote job (spam, expired, on-site only).
type Result struct {
	Valid           bool     `json:"valid"`
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	RemoteType      string   `json:"remote_type"`
	ExperienceLevel string   `json:"experience_level"`
}

type Client interface {
	AnalyzeJob(ctx context.Context, job domain.JobPosting) (Result, error)
	Close() error
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) AnalyzeJob(ctx context.Context, job domain.JobPosting) (Result, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(analyzePrompt(job)))
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return Result{}, err
	}

	var out Result
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &out); err != nil {
		return Result{}, fmt.Errorf("parse gemini response: %w", err)
	}
	out.RemoteType = normalizeRemoteType(out.RemoteType)
	out.ExperienceLevel = normalizeExperience(out.ExperienceLevel)
	return out, nil
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func analyzePrompt(job domain.JobPosting) string {
	desc := job.Description
	if len(desc) > 4000 {
		desc = desc[:4000]
	}
	return fmt.Sprintf(`You are reviewing a job-board listing. Respond with JSON only, shaped as
{"valid": bool, "summary": string, "skills": [string], "remote_type": string, "experience_level": string}.

valid: false if the listing is spam, an ad, expired, or not actually a remote position.
summary: 2-3 plain sentences describing the role.
skills: up to 10 concrete technologies or skills the role needs, lowercase.
remote_type: one of "remote", "fully_remote", "hybrid".
experience_level: one of "entry", "mid", "senior", "lead".

Title: %s
Company: %s
Location: %s
Description: %s`, job.Title, job.Company, job.Location, desc)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var parts []string
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock strips markdown fences the model sometimes wraps JSON in.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func normalizeRemoteType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remote", "fully_remote", "hybrid":
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return ""
	}
}

func normalizeExperience(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "mid", "senior", "lead":
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return ""
	}
}
