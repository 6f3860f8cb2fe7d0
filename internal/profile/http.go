package profile

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	userAgent       = "spigell/orienta"
	profilesPath    = "/v1/profiles"
)

// Profile is the payload of the profile service.
type Profile struct {
	OwnerID      string   `mapstructure:"owner_id"`
	AgeYears     int      `mapstructure:"age_years"`
	DisplayName  string   `mapstructure:"display_name"`
	NameVerified bool     `mapstructure:"name_verified"`
	Skills       []string `mapstructure:"skills"`
}

// HTTPProvider reads profiles from a JSON service with bearer authentication.
type HTTPProvider struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// NewHTTPProvider creates a provider for baseURL.
func NewHTTPProvider(baseURL, token string, logger *zap.Logger) *HTTPProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPProvider{
		token:  token,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		BaseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (p *HTTPProvider) AgeYears(ctx context.Context, ownerID string) (int, error) {
	prof, err := p.Get(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return prof.AgeYears, nil
}

func (p *HTTPProvider) DisplayName(ctx context.Context, ownerID string) (string, error) {
	prof, err := p.Get(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if !prof.NameVerified {
		return "", nil
	}
	return strings.TrimSpace(prof.DisplayName), nil
}

func (p *HTTPProvider) DeclaredSkills(ctx context.Context, ownerID string) ([]string, error) {
	prof, err := p.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return prof.Skills, nil
}

// Get fetches the full profile of ownerID.
func (p *HTTPProvider) Get(ctx context.Context, ownerID string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s%s/%s", p.BaseURL, profilesPath, url.PathEscape(ownerID))

	var raw map[string]any
	if err := p.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", ownerID, err)
	}

	var prof Profile
	if err := mapstructure.WeakDecode(raw, &prof); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", ownerID, err)
	}

	return &prof, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.token))
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	p.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return json.Unmarshal(data, target)
}
