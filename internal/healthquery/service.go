package healthquery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/healthlink-platform/healthlink/internal/ai"
	"github.com/healthlink-platform/healthlink/internal/checklist"
	"github.com/healthlink-platform/healthlink/internal/links"
	"github.com/healthlink-platform/healthlink/internal/metrics"
	"github.com/healthlink-platform/healthlink/internal/quota"
	"github.com/healthlink-platform/healthlink/internal/sources"
)

// ErrQuotaExceeded means today's global allowance is used up. Distinct from
// quota.ErrUnavailable: the store worked, the answer was no.
var ErrQuotaExceeded = errors.New("daily quota exceeded")

// Service is the per-request orchestrator: it decides whether a request is
// metered, consumes quota, calls the generator, and assembles the filtered,
// cited response.
type Service struct {
	quota quota.Store
	gen   ai.Generator
}

func NewService(q quota.Store, gen ai.Generator) *Service {
	return &Service{quota: q, gen: gen}
}

// Followup returns the checklist and default sources for the symptom text.
// No generation call is made, so no quota is consumed.
func (s *Service) Followup(ctx context.Context, input string) (*FollowupResponse, error) {
	return &FollowupResponse{
		Mode:      "intake",
		Stage:     "followup",
		Checklist: checklist.V1,
		Safety:    Safety{Notice: SafetyNotice},
		Sources:   safeSources(input, nil),
	}, nil
}

// Info answers a free-form health question with cited claims.
func (s *Service) Info(ctx context.Context, question string) (*InfoResponse, error) {
	if err := s.consumeQuota(ctx); err != nil {
		return nil, err
	}

	res, err := s.gen.Answer(ctx, question)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("answer", "error").Inc()
		return nil, fmt.Errorf("answer generation: %w", err)
	}
	metrics.GenerationsTotal.WithLabelValues("answer", "ok").Inc()

	// The registry only needs the set of cited aliases.
	seen := make(map[string]struct{})
	var aliases []string
	for _, c := range res.Claims {
		for _, id := range c.Cites {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			aliases = append(aliases, id)
		}
	}

	return &InfoResponse{
		Safety:  SafetyNotice,
		Answer:  res.Answer,
		Claims:  res.Claims,
		Sources: safeSources(question, aliases),
	}, nil
}

// IntakeFinal turns the symptom text and checklist answers into a clamped
// pre-visit briefing.
func (s *Service) IntakeFinal(ctx context.Context, input string, qa []ai.QA) (*IntakeFinalResponse, error) {
	if err := s.consumeQuota(ctx); err != nil {
		return nil, err
	}

	res, err := s.gen.Briefing(ctx, input, qa)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("briefing", "error").Inc()
		return nil, fmt.Errorf("briefing generation: %w", err)
	}
	metrics.GenerationsTotal.WithLabelValues("briefing", "ok").Inc()

	return &IntakeFinalResponse{
		Safety:             Safety{Notice: SafetyNotice},
		PreVisitBriefing:   res.PreVisitBriefing,
		QuestionsForDoctor: res.QuestionsForDoctor,
		RedFlags:           res.RedFlags,
		Sources:            safeSources(input, nil),
	}, nil
}

// consumeQuota takes one unit of the global daily allowance. The outcome is
// tri-state: allowed, exceeded (ErrQuotaExceeded), or store unavailable
// (quota.ErrUnavailable, prod fail-closed). No retry: a failed increment is
// a store failure, retrying would double-count.
func (s *Service) consumeQuota(ctx context.Context) error {
	res, err := s.quota.Consume(ctx)
	if err != nil {
		metrics.QuotaRejectedTotal.WithLabelValues("unavailable").Inc()
		return err
	}
	if !res.Allowed {
		metrics.QuotaRejectedTotal.WithLabelValues("exceeded").Inc()
		slog.Info("daily quota exceeded", "count", res.Count)
		return ErrQuotaExceeded
	}
	metrics.QuotaConsumedTotal.Inc()
	return nil
}

// safeSources builds registry links for the query and keeps only those that
// independently pass the allow-list validator. A dropped item means the
// registry and the validator disagree; it is logged and omitted rather than
// failing the request.
func safeSources(query string, aliases []string) []sources.Item {
	all := sources.Build(query, aliases)

	urls := make([]string, len(all))
	for i, it := range all {
		urls[i] = it.URL
	}
	valid := make(map[string]struct{}, len(urls))
	for _, u := range links.Filter(urls) {
		valid[u] = struct{}{}
	}

	kept := make([]sources.Item, 0, len(all))
	for _, it := range all {
		if _, ok := valid[it.URL]; ok {
			kept = append(kept, it)
		} else {
			slog.Error("registry produced a url rejected by the validator", "id", it.ID, "url", it.URL)
		}
	}
	return kept
}

// trimInput normalizes user text before it goes anywhere.
func trimInput(s string) string {
	return strings.TrimSpace(s)
}
