package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Client is an OpenAI-compatible embeddings client implementing the Embedder
// interface. It also understands the Ollama-native response shape for
// single-input requests.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	dimension  int
	client     *http.Client
	maxRetries int
}

// Config configures the OpenAI-compatible embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		timeout:    t,
		client:     &http.Client{Timeout: t},
		maxRetries: 5,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Dimension returns the dimensionality of the produced embedding vectors.
// It is set lazily on the first successful Embed call.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns embedding vectors for the given texts, parallel to the input.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	type reqBody struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}
	url := fmt.Sprintf("%s/embeddings", c.baseURL)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body := reqBody{Input: texts, Model: c.model}
		data, _ := json.Marshal(body)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries && ctx.Err() == nil {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			// Respect Retry-After if provided
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					_ = resp.Body.Close()
					time.Sleep(time.Duration(secs) * time.Second)
				} else {
					_ = resp.Body.Close()
					time.Sleep(retryDelay(attempt))
				}
			} else {
				_ = resp.Body.Close()
				time.Sleep(retryDelay(attempt))
			}
			if attempt < c.maxRetries {
				continue
			}
			return nil, fmt.Errorf("openai embeddings failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("openai embeddings failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}
		vectors, err := decodeVectors(payload, len(texts))
		if err == nil {
			if c.dimension == 0 && len(vectors) > 0 {
				c.dimension = len(vectors[0])
			}
			return vectors, nil
		}
		if attempt < c.maxRetries {
			time.Sleep(retryDelay(attempt))
			continue
		}
		return nil, err
	}
	return nil, errors.New("no embedding returned")
}

func decodeVectors(payload []byte, want int) ([][]float64, error) {
	// OpenAI-compatible response first. Data entries carry an index so the
	// output can be re-ordered to match the input.
	var openaiOut struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &openaiOut); err == nil && len(openaiOut.Data) == want {
		vectors := make([][]float64, want)
		for i, d := range openaiOut.Data {
			idx := d.Index
			if idx < 0 || idx >= want {
				idx = i
			}
			vectors[idx] = d.Embedding
		}
		for _, v := range vectors {
			if len(v) == 0 {
				return nil, errors.New("empty embedding in response")
			}
		}
		return vectors, nil
	}
	// Ollama-native shape: { "embedding": [...] }, single input only.
	if want == 1 {
		var ollamaOut struct {
			Embedding []float64 `json:"embedding"`
		}
		if err := json.Unmarshal(payload, &ollamaOut); err == nil && len(ollamaOut.Embedding) > 0 {
			return [][]float64{ollamaOut.Embedding}, nil
		}
	}
	return nil, errors.New("no embedding returned")
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
