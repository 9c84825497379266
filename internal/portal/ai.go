package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clienthub/internal/scope"
)

// ErrAssistantUnavailable covers both a missing generator configuration
// and a collaborator failure. Callers present it as "temporarily
// unavailable", never as an empty answer.
var ErrAssistantUnavailable = errors.New("portal: assistant unavailable")

const (
	adminTemperature  = 0.1
	clientTemperature = 0.3
)

// AskAdmin answers an admin prompt over the full operational snapshot.
func (s *Service) AskAdmin(ctx context.Context, p scope.Principal, prompt string) (string, error) {
	if !p.IsAdmin() {
		return "", ErrNotAuthorized
	}
	if s.gen == nil {
		return "", ErrAssistantUnavailable
	}

	cx, err := s.AdminSnapshot(ctx, p, false)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(`You are the project intelligence engineer of the studio control hub.

SYSTEM CONTEXT:
- Projects: %s
- Logs: %s
- Clients: %s
- Change requests: %s
- Leads: %s

RULES:
1. Answer only from the data above.
2. Be analytical and point out operational risks.`,
		asJSON(cx.Projects), asJSON(cx.Logs), asJSON(cx.Clients),
		asJSON(cx.Requests), asJSON(cx.Leads))

	answer, err := s.gen.Generate(ctx, instruction, prompt, adminTemperature)
	if err != nil {
		s.logger.Error("admin assistant call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return answer, nil
}

// AskClient answers a tenant prompt over the tenant's own snapshot only.
func (s *Service) AskClient(ctx context.Context, p scope.Principal, prompt string) (string, error) {
	if _, ok := p.Tenant(); !ok {
		return "", ErrNotAuthorized
	}
	if s.gen == nil {
		return "", ErrAssistantUnavailable
	}

	cx, err := s.ClientSnapshot(ctx, p)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(`You are the client status interpreter of the studio hub.

CLIENT CONTEXT (exclusive to this tenant):
- Projects: %s
- Visible updates: %s
- Change requests: %s

RULES:
1. Avoid heavy technical jargon.
2. Focus on the progress of the partnership.`,
		asJSON(cx.Projects), asJSON(cx.Updates), asJSON(cx.Requests))

	answer, err := s.gen.Generate(ctx, instruction, prompt, clientTemperature)
	if err != nil {
		s.logger.Error("client assistant call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return answer, nil
}

func asJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
