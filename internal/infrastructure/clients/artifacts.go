package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ArtifactsClient asks the QR service for a scannable-code URL for a
// ticket number. Failures are isolated per ticket by the caller.
type ArtifactsClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewArtifactsClient(baseURL string, httpClient *http.Client) *ArtifactsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &ArtifactsClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type generateArtifactRequest struct {
	TicketNumber string `json:"ticket_number"`
}

type generateArtifactResponse struct {
	URL string `json:"url"`
}

func (c *ArtifactsClient) Generate(ctx context.Context, ticketNumber string) (string, error) {
	body, err := json.Marshal(generateArtifactRequest{TicketNumber: ticketNumber})
	if err != nil {
		return "", fmt.Errorf("marshal artifact request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/qrcodes", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error generating artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %v", resp.StatusCode)
	}

	var artifactResp generateArtifactResponse
	if err := json.NewDecoder(resp.Body).Decode(&artifactResp); err != nil {
		return "", fmt.Errorf("decode artifact response: %w", err)
	}

	return artifactResp.URL, nil
}
