package services

import (
	"context"
	"fmt"
	"strings"

	"luco/pkg/genai"
	"luco/pkg/logger"
)

// SnippetService generates ready-to-paste integration snippets for the
// payment API, for merchants wiring their own checkout against it.
type SnippetService interface {
	GenerateSnippet(ctx context.Context, platform, description string) (*Snippet, error)
}

type Snippet struct {
	Platform    string `json:"platform"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

type snippetService struct {
	client *genai.Client
	logger *logger.Logger
}

func NewSnippetService(client *genai.Client, log *logger.Logger) SnippetService {
	return &snippetService{
		client: client,
		logger: log,
	}
}

const snippetSystemPrompt = `You write integration code for the LucoPay mobile money API.
The API lives at https://lucopay.onrender.com and speaks JSON:
- POST /identity/msisdn with {"msisdn": "+2567..."} returns {"identityname", "message", "success"}.
- POST /api/v1/request_payment with {"amount": "<string>", "number": "<digits, no plus>", "refer": "<reference>"} initiates a charge.
- POST /api/v1/payment_webhook with {"reference"} returns {"status", "reason"}; poll it until status is "succeeded", "success" or "failed". The message "Transaction not found" means keep polling.
Produce a code snippet for the requested platform followed by a short explanation. Separate the two with a line containing only "---".`

func (s *snippetService) GenerateSnippet(ctx context.Context, platform, description string) (*Snippet, error) {
	answer, err := s.client.Complete(ctx, []genai.Message{
		{Role: "system", Content: snippetSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Platform: %s\nWhat the merchant needs: %s", platform, description)},
	})
	if err != nil {
		s.logger.WithError(err).Error("snippet generation failed")
		return nil, fmt.Errorf("failed to generate snippet: %w", err)
	}

	snippet := &Snippet{Platform: platform}
	if code, explanation, found := strings.Cut(answer, "\n---\n"); found {
		snippet.Code = strings.TrimSpace(code)
		snippet.Explanation = strings.TrimSpace(explanation)
	} else {
		snippet.Code = strings.TrimSpace(answer)
	}

	return snippet, nil
}
