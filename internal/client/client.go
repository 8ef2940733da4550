package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"

	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/internal/models"
)

const maxBodyBytes = 8 << 20

// ErrImageUnreadable is returned when the staged image cannot be read at send time.
var ErrImageUnreadable = errors.New("attached image could not be read")

// Request is one submission to a generation endpoint.
type Request struct {
	ID        string
	Endpoint  string
	Encoding  models.Encoding
	UserInput string
	Language  string
	Image     *attachment.File
}

// Reply is what the backend answered with.
type Reply struct {
	Status      int
	Response    string
	HasResponse bool
	Error       string
}

func (r Reply) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a backend client. No timeout is set on the default HTTP
// client; request lifetime is governed by the caller's context.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequestID returns a fresh correlation ID
func NewRequestID() string {
	return uuid.New().String()
}

// Generate sends req and decodes the reply. An error means no usable
// response was obtained.
func (c *Client) Generate(ctx context.Context, req Request) (Reply, error) {
	body, contentType, err := encode(req)
	if err != nil {
		return Reply{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+req.Endpoint, body)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "RoriRoast/1.0")
	if req.ID != "" {
		httpReq.Header.Set("X-Request-ID", req.ID)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Reply{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read response: %w", err)
	}

	reply := Reply{Status: resp.StatusCode}

	var payload struct {
		Response *string `json:"response"`
		Error    string  `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		if reply.OK() {
			return Reply{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
		}
		// error statuses fall back to the generic message
		return reply, nil
	}

	if payload.Response != nil {
		reply.Response = *payload.Response
		reply.HasResponse = true
	}
	reply.Error = payload.Error
	return reply, nil
}

func encode(req Request) (io.Reader, string, error) {
	switch req.Encoding {
	case models.EncodingMultipart:
		return encodeMultipart(req)
	case models.EncodingJSON, "":
		data, err := json.Marshal(map[string]string{
			"user_input": req.UserInput,
			"language":   req.Language,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", fmt.Errorf("unsupported encoding: %s", req.Encoding)
	}
}

func encodeMultipart(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("user_input", req.UserInput); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := w.WriteField("language", req.Language); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}

	if req.Image != nil {
		data, err := req.Image.ReadAll()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrImageUnreadable, err)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, req.Image.Name))
		h.Set("Content-Type", req.Image.Type)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
