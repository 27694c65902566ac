package medinfo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"family-med-tracker/internal/platform/httpclient"
	"family-med-tracker/internal/ports/druginfo"
)

var ErrUpstream = errors.New("medinfo upstream error")

// Config del cliente contra el servicio de consulta de medicamentos
// (el colaborador de IA generativa). Env: MEDINFO_BASE_URL, MEDINFO_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implementa druginfo.Lookup sobre el servicio externo.
// El motor de agenda nunca pasa por acá; es solo para la pantalla de
// información de medicamentos.
type Client struct {
	http       *httpclient.Client
	apiKey     string
	configured bool
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:       hc,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		configured: strings.TrimSpace(cfg.BaseURL) != "",
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

func (c *Client) Lookup(ctx context.Context, medication string) (druginfo.Info, error) {
	medication = strings.TrimSpace(medication)
	if medication == "" {
		return druginfo.Info{}, errors.New("medication required")
	}
	if !c.IsConfigured() {
		return druginfo.Info{}, druginfo.ErrNotConfigured
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	var out struct {
		Summary     string `json:"summary"`
		SideEffects string `json:"side_effects"`
		Source      string `json:"source"`
	}

	path := "/v1/medications/" + url.PathEscape(medication)
	if err := c.http.DoJSON(ctx, http.MethodGet, path, headers, nil, &out); err != nil {
		return druginfo.Info{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return druginfo.Info{
		Medication:  medication,
		Summary:     out.Summary,
		SideEffects: out.SideEffects,
		Source:      out.Source,
	}, nil
}
