package ai

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	appcfg "github.com/inkwell-notes/core/internal/config"
	"go.uber.org/zap"
)

var (
	// ErrContentTooShort is a validation failure, reported before any stream output.
	ErrContentTooShort = errors.New("content is too short to summarize")
	// ErrNoProvider means no enabled AI provider is configured.
	ErrNoProvider = errors.New("no enabled AI provider")
)

// Service is the summarization proxy: it wraps note content in the fixed
// prompt, opens one upstream stream, and relays fragments to the caller as
// they arrive. Purely a relay; nothing is persisted and nothing is retried.
type Service struct {
	cfg appcfg.AIConfig
	log *zap.Logger

	// newUpstream is swappable for tests.
	newUpstream func(appcfg.AIProvider) (upstream, error)
}

func NewService(cfg appcfg.AIConfig, log *zap.Logger) *Service {
	return &Service{cfg: cfg, log: log, newUpstream: newUpstream}
}

// Stream forwards each upstream fragment to onFragment in arrival order and
// returns the full concatenated text. onFragment returning an error stops
// upstream consumption (the downstream reader is gone). An idle ceiling
// aborts the stream when no fragment arrives within the configured window.
func (s *Service) Stream(ctx context.Context, content string, onFragment func(string) error) (string, error) {
	if utf8.RuneCountInString(content) < s.cfg.MinContentLength {
		return "", ErrContentTooShort
	}

	provider := selectProvider(s.cfg)
	if provider == nil {
		return "", ErrNoProvider
	}
	up, err := s.newUpstream(*provider)
	if err != nil {
		return "", err
	}

	system, prompt := buildSummaryPrompt(content)
	req := summaryRequest{
		System:      system,
		Prompt:      prompt,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.SamplingTemperature(),
	}

	idle := time.Duration(s.cfg.IdleTimeoutSec) * time.Second
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchdog := time.AfterFunc(idle, cancel)
	defer watchdog.Stop()

	return up.Stream(streamCtx, req, func(token string) error {
		watchdog.Reset(idle)
		return onFragment(token)
	})
}
