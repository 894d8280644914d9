// Package gemini implements apptdash.Assistant using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/apptdash"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// DefaultLanguage is the language replies are written in.
const DefaultLanguage = "Thai"

// Ensure Assistant implements apptdash.Assistant at compile time.
var _ apptdash.Assistant = (*Assistant)(nil)

// Assistant implements apptdash.Assistant using Google Gemini.
type Assistant struct {
	client   *genai.Client
	model    string
	language string
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(a *Assistant) {
		if model != "" {
			a.model = model
		}
	}
}

// WithLanguage sets the language replies are written in.
func WithLanguage(language string) Option {
	return func(a *Assistant) {
		if language != "" {
			a.language = language
		}
	}
}

// NewAssistant creates a new Assistant.
func NewAssistant(client *genai.Client, opts ...Option) *Assistant {
	a := &Assistant{
		client:   client,
		model:    DefaultModel,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize analyzes the schedule for busy periods, conflicts, and staffing.
func (a *Assistant) Summarize(ctx context.Context, appts []*apptdash.Appointment) (string, error) {
	if len(appts) == 0 {
		return "", apptdash.Errorf(apptdash.EINVALID, "no appointments loaded")
	}

	prompt, err := BuildSummaryPrompt(appts, a.language)
	if err != nil {
		return "", err
	}
	return a.generate(ctx, prompt)
}

// Answer answers a free-form question about the schedule.
func (a *Assistant) Answer(ctx context.Context, question string, appts []*apptdash.Appointment) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apptdash.Errorf(apptdash.EINVALID, "question required")
	}
	if len(appts) == 0 {
		return "", apptdash.Errorf(apptdash.EINVALID, "no appointments loaded")
	}

	prompt, err := BuildQuestionPrompt(appts, question, a.language)
	if err != nil {
		return "", err
	}
	return a.generate(ctx, prompt)
}

func (a *Assistant) generate(ctx context.Context, prompt string) (string, error) {
	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", apptdash.Errorf(apptdash.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an AI assistant for a small service shop. You help the owner understand their appointment schedule. Base every statement on the appointments provided.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildSummaryPrompt builds the prompt asking for a schedule analysis.
func BuildSummaryPrompt(appts []*apptdash.Appointment, language string) (string, error) {
	data, err := marshalAppointments(appts)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this appointment schedule and provide insights in %s.\n", language)
	fmt.Fprintf(&sb, "<appointments>%s</appointments>\n\n", data)
	sb.WriteString("Please identify:\n")
	sb.WriteString("1. Busy days/times.\n")
	sb.WriteString("2. Any scheduling conflicts.\n")
	sb.WriteString("3. Suggestions for staffing or resource allocation based on service types.\n")
	sb.WriteString("Keep it concise and professional.")
	return sb.String(), nil
}

// BuildQuestionPrompt builds the prompt answering a user's question.
func BuildQuestionPrompt(appts []*apptdash.Appointment, question, language string) (string, error) {
	data, err := marshalAppointments(appts)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Answer the following user query about the shop's schedule.\n")
	fmt.Fprintf(&sb, "<appointments>%s</appointments>\n\n", data)
	fmt.Fprintf(&sb, "User Query: %s\n", question)
	fmt.Fprintf(&sb, "Answer in %s politely.", language)
	return sb.String(), nil
}

func marshalAppointments(appts []*apptdash.Appointment) (string, error) {
	data, err := json.Marshal(appts)
	if err != nil {
		return "", fmt.Errorf("failed to encode appointments: %w", err)
	}
	return string(data), nil
}
