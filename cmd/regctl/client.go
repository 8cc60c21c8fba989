package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"news-classifier-registry/internal/adapters/primary/http/dto"
)

// apiClient is a thin wrapper over the registry HTTP API.
type apiClient struct {
	base  string
	token string
	http  *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		base:  rootFlags.server + "/api/v1/registry",
		token: rootFlags.token,
		http:  &http.Client{Timeout: 2 * time.Minute},
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (HTTP %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *apiClient) getModelByName(ctx context.Context, name string) (*dto.RegisteredModelResponse, error) {
	q := url.Values{}
	q.Set("catalog", rootFlags.catalog)
	q.Set("schema", rootFlags.schema)
	q.Set("name", name)

	var model dto.RegisteredModelResponse
	if err := c.do(ctx, http.MethodGet, "/model?"+q.Encode(), nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (c *apiClient) listVersions(ctx context.Context, modelID uuid.UUID) (*dto.ListModelVersionsResponse, error) {
	var list dto.ListModelVersionsResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/models/%s/versions?limit=100", modelID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *apiClient) promotionStatus(ctx context.Context, modelID uuid.UUID) (*dto.PromotionStatusResponse, error) {
	var status dto.PromotionStatusResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/models/%s/promotion", modelID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *apiClient) promote(ctx context.Context, modelID uuid.UUID, approved bool) (*dto.PromotionResultResponse, error) {
	var result dto.PromotionResultResponse
	req := dto.PromoteRequest{Approved: approved}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/models/%s/promotion", modelID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) classify(ctx context.Context, modelID uuid.UUID, req dto.ClassifyRequest) (*dto.InferenceReportResponse, error) {
	var report dto.InferenceReportResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/models/%s/classify", modelID), req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *apiClient) purgeVersions(ctx context.Context, modelID uuid.UUID) (int, error) {
	var resp struct {
		Deleted int `json:"deleted_versions"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/models/%s/versions", modelID), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}
