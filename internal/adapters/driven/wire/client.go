package wire

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestInterval paces protocol calls. Chunk uploads are sequential
	// anyway; the limiter keeps retries and team-flow refreshes civil.
	requestInterval = 100 * time.Millisecond
	requestBurst    = 5
)

// Endpoint paths of the publication protocol.
const (
	pathSuggest  = "/api/0/suggest"
	pathBundle   = "/api/0/bundle"
	pathMissing  = "/api/0/missing"
	pathFinalize = "/api/0/finalize"
	pathTeams    = "/api/0/teams"
)

// Ensure the adapter implements its ports.
var (
	_ driven.PublishAPI    = (*Client)(nil)
	_ driven.ClientFactory = (*Factory)(nil)
)

// Client speaks the publication protocol against one discovered base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a protocol client. A nil httpClient gets a default
// client with DefaultTimeout.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(requestInterval), requestBurst),
	}
}

// Factory builds protocol clients for discovered endpoints, sharing one
// HTTP client across them.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a client factory. The httpClient typically wraps the
// bearer credential (oauth2.NewClient); nil gets a default client.
func NewFactory(httpClient *http.Client) *Factory {
	return &Factory{httpClient: httpClient}
}

// New returns a client bound to the endpoint's base URL.
func (f *Factory) New(endpoint *domain.Endpoint) driven.PublishAPI {
	return NewClient(f.httpClient, endpoint.BaseURL)
}

// Suggest proposes a bundle identifier to the destination.
func (c *Client) Suggest(
	ctx context.Context, scope driven.RequestScope, bundleHash []byte,
) (*driven.SuggestResponse, error) {
	fields := scopeFields(scope)
	fields[reqBundle] = bundleHash

	resp, err := c.post(ctx, pathSuggest, fields)
	if err != nil {
		return nil, err
	}
	return &driven.SuggestResponse{
		Present:  resp.boolField(respPresent),
		Missing:  resp.stringsField(respMissing),
		Errors:   resp.stringsField(respErrors),
		Warnings: resp.stringsField(respWarnings),
		Messages: resp.stringsField(respMessages),
	}, nil
}

// UploadBundle uploads the whole serialized bundle tree.
func (c *Client) UploadBundle(
	ctx context.Context, scope driven.RequestScope, encoded []byte,
) (*driven.BundleUploadResponse, error) {
	fields := scopeFields(scope)
	fields[reqBundle] = encoded

	resp, err := c.post(ctx, pathBundle, fields)
	if err != nil {
		return nil, err
	}
	return &driven.BundleUploadResponse{
		BundleID: resp.bytesField(respBundleID),
		Missing:  resp.stringsField(respMissing),
		Errors:   resp.stringsField(respErrors),
		Warnings: resp.stringsField(respWarnings),
		Messages: resp.stringsField(respMessages),
	}, nil
}

// UploadMissing uploads one chunk of raw content blobs.
func (c *Client) UploadMissing(
	ctx context.Context, scope driven.RequestScope, blobs [][]byte,
) error {
	fields := scopeFields(scope)
	fields[reqBlobs] = blobs

	_, err := c.post(ctx, pathMissing, fields)
	return err
}

// Finalize commits the bundle as the live snapshot for the domain.
func (c *Client) Finalize(
	ctx context.Context, scope driven.RequestScope, bundleID []byte,
) (*driven.FinalizeResponse, error) {
	fields := scopeFields(scope)
	fields[reqBundle] = bundleID

	resp, err := c.post(ctx, pathFinalize, fields)
	if err != nil {
		return nil, err
	}
	return &driven.FinalizeResponse{
		Committed: resp.boolField(respSuccess),
		Errors:    resp.stringsField(respErrors),
		Warnings:  resp.stringsField(respWarnings),
		Messages:  resp.stringsField(respMessages),
	}, nil
}

// Teams fetches the team scopes available to the credential.
func (c *Client) Teams(
	ctx context.Context, scope driven.RequestScope,
) (*domain.TeamList, error) {
	resp, err := c.post(ctx, pathTeams, scopeFields(scope))
	if err != nil {
		return nil, err
	}

	entries := resp.listField(respTeams)
	list := &domain.TeamList{
		Teams:     make([]domain.Team, 0, len(entries)),
		ManageURL: resp.stringField(respManage),
	}
	for _, entry := range entries {
		list.Teams = append(list.Teams, domain.Team{
			ID:   entry.stringField(teamID),
			Name: entry.stringField(teamName),
		})
	}
	return list, nil
}

// scopeFields builds the fields common to every request. The team field
// is omitted entirely when no scope is set.
func scopeFields(scope driven.RequestScope) map[int]any {
	fields := map[int]any{
		reqCredential: scope.Credential,
		reqDomain:     scope.Domain,
	}
	if scope.TeamID != "" {
		fields[reqTeam] = scope.TeamID
	}
	return fields
}

// post sends one protocol request and decodes the response body. Any
// non-200 status is a transport error regardless of body content.
func (c *Client) post(ctx context.Context, path string, fields map[int]any) (fieldMap, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := encodeBody(fields)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	logger.Debug("POST %s (%d bytes)", url, len(body))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransport, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: url}
	}
	return decodeBody(resp.Body)
}
