package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

// wellKnownPath is the fixed path of the protocol metadata document.
const wellKnownPath = "/.well-known/web-publication-protocol"

// Ensure Discoverer implements the interface.
var _ driven.Discoverer = (*Discoverer)(nil)

// Discoverer resolves a hosting-service domain to a protocol endpoint by
// fetching and validating its well-known metadata document. The document
// is plain JSON, not the binary codec.
type Discoverer struct {
	httpClient *http.Client
}

// NewDiscoverer creates a discoverer. A nil httpClient gets a default
// client with DefaultTimeout.
func NewDiscoverer(httpClient *http.Client) *Discoverer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Discoverer{httpClient: httpClient}
}

// wellKnownDoc is the JSON shape of the metadata document.
type wellKnownDoc struct {
	Protocols           []string `json:"protocols"`
	URL                 string   `json:"url"`
	APIKeyManagementURL string   `json:"apiKeyManagementUrl"`
}

// Discover fetches the well-known document for a domain and validates it
// against the protocol version this client implements.
func (d *Discoverer) Discover(ctx context.Context, siteDomain string) (*domain.Endpoint, error) {
	url := normalizeBase(siteDomain) + wellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrDiscovery, err)
	}

	logger.Debug("GET %s", url)
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", domain.ErrDiscovery, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrDiscovery, url, resp.StatusCode)
	}

	var doc wellKnownDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrDiscovery, url, err)
	}
	if doc.URL == "" {
		return nil, fmt.Errorf("%w: %s does not declare an API URL", domain.ErrDiscovery, url)
	}
	if !slices.Contains(doc.Protocols, domain.ProtocolVersion) {
		return nil, fmt.Errorf("%w: %s does not support protocol version %s (offers %v)",
			domain.ErrDiscovery, siteDomain, domain.ProtocolVersion, doc.Protocols)
	}

	return &domain.Endpoint{
		Protocols:        doc.Protocols,
		BaseURL:          doc.URL,
		KeyManagementURL: doc.APIKeyManagementURL,
	}, nil
}

// normalizeBase prepends https:// to a schemeless domain.
func normalizeBase(siteDomain string) string {
	base := strings.TrimSuffix(siteDomain, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base
}
