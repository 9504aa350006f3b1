// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Cloud talks to the hosted asset store's admin API over HTTPS with basic
// auth. Assets themselves are uploaded to the remote store by the client;
// this adapter only reads and writes the per-asset context metadata.
//
// The remote API has no compare-and-swap and returns no version token, so
// Commit here is a blind merge write: the base argument is ignored and a
// lost race silently overwrites the other writer's context. The counter
// engine's retry protocol is what keeps counts convergent on top of that;
// deployments that need detected conflicts use the SQL adapter instead.
type Cloud struct {
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewCloud builds an adapter for the given cloud. baseURL is the API root
// without the cloud name ("https://api.cloudinary.com/v1_1" in production,
// an httptest server in tests).
func NewCloud(baseURL, cloudName, apiKey, apiSecret string, timeout time.Duration) *Cloud {
	return &Cloud{
		baseURL:   strings.TrimRight(baseURL, "/"),
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: timeout},
	}
}

// cloudResource is the wire shape of one asset in API responses.
type cloudResource struct {
	PublicID  string          `json:"public_id"`
	SecureURL string          `json:"secure_url"`
	CreatedAt time.Time       `json:"created_at"`
	Context   json.RawMessage `json:"context"`
}

func (c *Cloud) Fetch(ctx context.Context, id string) (Snapshot, error) {
	var res cloudResource
	err := c.do(ctx, http.MethodGet, "/resources/image/upload/"+url.PathEscape(id), nil, &res)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotOf(res), nil
}

func (c *Cloud) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return c.search(ctx, "resource_type:image", limit)
}

func (c *Cloud) SearchByField(ctx context.Context, key, value string) ([]Snapshot, error) {
	expr := fmt.Sprintf("context.%s=%q", key, value)
	return c.search(ctx, expr, 0)
}

func (c *Cloud) search(ctx context.Context, expression string, limit int) ([]Snapshot, error) {
	body := map[string]interface{}{
		"expression": expression,
		"sort_by":    []map[string]string{{"created_at": "desc"}},
		"with_field": []string{"context"},
	}
	if limit > 0 {
		body["max_results"] = limit
	}

	var res struct {
		Resources []cloudResource `json:"resources"`
	}
	if err := c.do(ctx, http.MethodPost, "/resources/search", body, &res); err != nil {
		return nil, err
	}

	out := make([]Snapshot, 0, len(res.Resources))
	for _, r := range res.Resources {
		out = append(out, snapshotOf(r))
	}
	// the API sorts too; one local sort keeps the order contract uniform
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (c *Cloud) Commit(ctx context.Context, id string, base, merged map[string]string) error {
	// base unused: the remote API cannot compare it. See the type comment.
	body := map[string]interface{}{
		"context": encodePairs(merged),
	}
	return c.do(ctx, http.MethodPost, "/resources/image/upload/"+url.PathEscape(id), body, nil)
}

func (c *Cloud) Create(ctx context.Context, snap Snapshot) error {
	// The binary was uploaded out of band; creating an asset here means
	// attaching its initial context to the existing remote record.
	body := map[string]interface{}{
		"context": encodePairs(snap.Context),
	}
	return c.do(ctx, http.MethodPost, "/resources/image/upload/"+url.PathEscape(snap.ID), body, nil)
}

func (c *Cloud) do(ctx context.Context, method, path string, body, out interface{}) error {
	u := c.baseURL + "/" + c.cloudName + path

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("store returned %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// snapshotOf flattens a wire resource into a Snapshot. Historical records
// nest the context under a "custom" object; current ones are flat. Both
// are accepted on read, only the flat form is ever written.
func snapshotOf(r cloudResource) Snapshot {
	snap := Snapshot{
		ID:        r.PublicID,
		URL:       r.SecureURL,
		CreatedAt: r.CreatedAt,
		Context:   make(map[string]string),
	}
	if len(r.Context) == 0 {
		return snap
	}

	var nested struct {
		Custom map[string]json.RawMessage `json:"custom"`
	}
	if err := json.Unmarshal(r.Context, &nested); err == nil && nested.Custom != nil {
		for k, v := range nested.Custom {
			snap.Context[k] = rawString(v)
		}
		return snap
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(r.Context, &flat); err == nil {
		for k, v := range flat {
			if k == "custom" {
				continue
			}
			snap.Context[k] = rawString(v)
		}
	}
	return snap
}

// rawString renders a JSON scalar as the string the context blob stores.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// encodePairs renders a context blob in the API's pipe-delimited form:
// key=value|key2=value2, with = and | escaped inside values.
func encodePairs(blob map[string]string) string {
	keys := make([]string, 0, len(blob))
	for k := range blob {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := blob[k]
		v = strings.ReplaceAll(v, `=`, `\=`)
		v = strings.ReplaceAll(v, `|`, `\|`)
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, "|")
}
