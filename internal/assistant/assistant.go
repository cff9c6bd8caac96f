// Package assistant implements the Pharma AI chat proxy: it forwards a
// conversation transcript to the configured completion provider under a fixed
// persona prompt, with a static fallback reply on any upstream failure.
package assistant

import (
	"context"
	"time"

	"github.com/Murari1104/pharmaAi/internal/config"
	apperrors "github.com/Murari1104/pharmaAi/internal/errors"
	"github.com/Murari1104/pharmaAi/internal/llm"
	"github.com/Murari1104/pharmaAi/internal/metrics"
	"github.com/Murari1104/pharmaAi/internal/store"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SystemPrompt is the fixed Pharma AI persona. It is prepended to every
// transcript and never exposed to the client.
const SystemPrompt = `You are Pharma AI, a helpful medical assistant. You provide general health information and guidance, but always remind users to consult with healthcare professionals for serious concerns. Keep responses concise, helpful, and empathetic. Always include a disclaimer that your advice doesn't replace professional medical consultation.`

// FallbackReply is substituted whenever the upstream call fails, so the user
// always sees either the real reply or this text.
const FallbackReply = "I'm sorry, I'm having trouble connecting right now. Please try again later."

// Turn is one prior message in the transcript sent by the client
type Turn struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// Reply is the assistant's answer to one chat request
type Reply struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
	Fallback       bool   `json:"fallback"`
	LatencyMs      int64  `json:"latency_ms"`
}

// Assistant proxies chat requests to the LLM and records the exchange
type Assistant struct {
	client  *llm.Client
	store   *store.Store
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New creates the chat assistant
func New(client *llm.Client, st *store.Store, cfg config.AssistantConfig, m *metrics.Metrics, logger *zap.Logger) *Assistant {
	rpm := cfg.RateRPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}

	return &Assistant{
		client:  client,
		store:   st,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst),
		metrics: m,
		logger:  logger,
	}
}

// Chat forwards the transcript (prior turns plus the latest user turn) to the
// provider. One outbound call, no retry, no streaming. Upstream failure is
// logged and reported through the fallback reply, never swallowed silently.
func (a *Assistant) Chat(ctx context.Context, conversationID string, transcript []Turn) (*Reply, error) {
	if len(transcript) == 0 || lastUserTurn(transcript) == "" {
		return nil, apperrors.ErrEmptyTranscript
	}

	conversationID, err := a.ensureConversation(conversationID, lastUserTurn(transcript))
	if err != nil {
		return nil, err
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(transcript))
	for _, turn := range transcript {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	start := time.Now()
	content, llmErr := a.client.Complete(ctx, SystemPrompt, messages)
	latency := time.Since(start)

	reply := &Reply{
		ConversationID: conversationID,
		Content:        content,
		LatencyMs:      latency.Milliseconds(),
	}
	if llmErr != nil {
		a.logger.Error("chat completion failed, substituting fallback",
			zap.String("conversation_id", conversationID),
			zap.Error(llmErr),
		)
		reply.Content = FallbackReply
		reply.Fallback = true
	}
	a.metrics.RecordChat(llmErr == nil, latency)

	a.record(conversationID, lastUserTurn(transcript), reply)
	return reply, nil
}

func lastUserTurn(transcript []Turn) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == "user" {
			return transcript[i].Content
		}
	}
	return ""
}

func (a *Assistant) ensureConversation(id, firstMessage string) (string, error) {
	if id != "" {
		if _, err := a.store.GetConversation(id); err == nil {
			return id, nil
		}
		// A stale id from the client starts a fresh thread rather than failing
		a.logger.Debug("unknown conversation id, starting new thread", zap.String("id", id))
	}

	conv := &store.Conversation{
		Title: titleFrom(firstMessage),
		Model: a.client.GetModel(),
	}
	if err := a.store.CreateConversation(conv); err != nil {
		return "", err
	}
	return conv.ID, nil
}

func titleFrom(message string) string {
	const max = 48
	if len(message) <= max {
		return message
	}
	return message[:max]
}

func (a *Assistant) record(conversationID, userMessage string, reply *Reply) {
	if err := a.store.AppendMessage(&store.ChatMessage{
		ConversationID: conversationID,
		Role:           "user",
		Content:        userMessage,
	}); err != nil {
		a.logger.Warn("failed to persist user message", zap.Error(err))
	}

	if err := a.store.AppendMessage(&store.ChatMessage{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        reply.Content,
		Fallback:       reply.Fallback,
		LatencyMs:      int(reply.LatencyMs),
	}); err != nil {
		a.logger.Warn("failed to persist assistant message", zap.Error(err))
	}
}
