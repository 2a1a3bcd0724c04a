// Package llm 目的地推荐模型客户端（OpenAI 兼容的 chat completions 接口）
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// ErrMalformedReply 模型返回的内容不符合约定的 JSON 结构
var ErrMalformedReply = errors.New("malformed recommender reply")

// Request 推荐请求
type Request struct {
	TravelMode        string  `json:"travel_mode"`
	DistanceKm        float64 `json:"distance_km"`
	WeatherPreference string  `json:"weather_preference,omitempty"`
	SeasonPreference  string  `json:"season_preference,omitempty"`
}

// Reply 模型必须返回的结构
type Reply struct {
	Recommendations []models.Destination `json:"recommendations"`
}

// Client 推荐模型客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient 创建客户端
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = "You are an expert travel agent specializing in eco-friendly tourism."

var userPrompt = template.Must(template.New("recommend").Parse(
	`Based on the user's preferences for travel mode, distance, weather, and season, recommend some eco-friendly travel destinations. Include the best season to visit and sustainable practices for each destination.

Travel Mode: {{.TravelMode}}
Distance: {{printf "%.0f" .DistanceKm}} km
Weather Preference: {{if .WeatherPreference}}{{.WeatherPreference}}{{else}}any{{end}}
Season Preference: {{if .SeasonPreference}}{{.SeasonPreference}}{{else}}any{{end}}

Respond only with a JSON object of the form {"recommendations": [{"destination_name": "", "description": "", "best_season": "", "sustainable_practices": ""}]}.`))

// Prompt 渲染用户提示词
func Prompt(req Request) (string, error) {
	var buf bytes.Buffer
	if err := userPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// Recommend 请求推荐，单次调用不重试
func (c *Client) Recommend(ctx context.Context, req Request) (*Reply, error) {
	prompt, err := Prompt(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("recommender failed: status=%d body=%s", resp.StatusCode, string(b))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("recommender error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedReply)
	}

	return ParseReply(chat.Choices[0].Message.Content)
}

// ParseReply 解析模型输出，允许被 ``` 代码块包裹
func ParseReply(content string) (*Reply, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var reply Reply
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if len(reply.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: empty recommendations", ErrMalformedReply)
	}
	for i, r := range reply.Recommendations {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: recommendation %d has no destination_name", ErrMalformedReply, i)
		}
	}
	return &reply, nil
}
