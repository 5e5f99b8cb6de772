package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"floorplanner/internal/editor/document"
)

// ============================================================
// Converter Client
// ============================================================

// ConverterClient отправляет SVG в Converter /convert.
type ConverterClient struct {
	baseURL string
	client  *http.Client
}

func NewConverterClient(baseURL string) *ConverterClient {
	return &ConverterClient{baseURL: baseURL, client: &http.Client{Timeout: 30 * time.Second}}
}

// Convert возвращает документ плана, распознанный из svg.
func (cc *ConverterClient) Convert(ctx context.Context, filename string, svg []byte) (document.Document, error) {
	if cc == nil || cc.baseURL == "" {
		return document.Document{}, fmt.Errorf("%w: converter url is empty", ErrConverter)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return document.Document{}, err
	}
	if _, err := part.Write(svg); err != nil {
		return document.Document{}, err
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.baseURL+"/convert", body)
	if err != nil {
		return document.Document{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := cc.client.Do(req)
	if err != nil {
		return document.Document{}, fmt.Errorf("%w: %v", ErrConverter, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.Document{}, err
	}
	if resp.StatusCode >= 300 {
		return document.Document{}, fmt.Errorf("%w: status %d", ErrConverter, resp.StatusCode)
	}

	return document.Unmarshal(data)
}
