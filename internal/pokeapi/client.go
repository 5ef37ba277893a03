package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Dianaaleja/poke-pipeline/internal/entities"
)

const (
	// DefaultBaseURL is the public PokeAPI endpoint
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	defaultTimeout = 10 * time.Second
)

// Client interfaces with the PokeAPI listing and detail endpoints
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new PokeAPI client with a fixed request timeout
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
	}
}

// PokemonRef is one entry of a paginated listing: a lightweight reference
// that must be resolved through GetPokemon for the full document.
type PokemonRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse represents one page of the pokemon listing endpoint
type ListResponse struct {
	Count   int          `json:"count"`
	Next    *string      `json:"next"`
	Results []PokemonRef `json:"results"`
}

// detailDocument mirrors the wire shape of a detail endpoint response. Only
// the fields the pipeline consumes are decoded; scalars stay untyped so the
// transformer can validate them.
type detailDocument struct {
	ID             any `json:"id"`
	Name           any `json:"name"`
	Height         any `json:"height"`
	Weight         any `json:"weight"`
	BaseExperience any `json:"base_experience"`
	Types          []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"type"`
	} `json:"types"`
}

// ListPokemon fetches one page of the pokemon listing
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*ListResponse, error) {
	u, err := url.Parse(c.baseURL + "/pokemon")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	var list ListResponse
	if err := c.getJSON(ctx, u.String(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPokemon fetches the detail document behind a listing reference
func (c *Client) GetPokemon(ctx context.Context, ref PokemonRef) (entities.RawPokemon, error) {
	var doc detailDocument
	if err := c.getJSON(ctx, ref.URL, &doc); err != nil {
		return entities.RawPokemon{}, err
	}

	raw := entities.RawPokemon{
		ID:             doc.ID,
		Name:           doc.Name,
		Height:         doc.Height,
		Weight:         doc.Weight,
		BaseExperience: doc.BaseExperience,
		Types:          make([]entities.TypeRef, 0, len(doc.Types)),
	}
	// Preserve the listed order; the transformer derives slots from it.
	for _, t := range doc.Types {
		raw.Types = append(raw.Types, entities.TypeRef{Name: t.Type.Name})
	}
	return raw, nil
}

// ExtractAll pages through the listing until limit references are collected,
// then resolves each reference to its detail document. Fetching is strictly
// sequential; the first failure aborts the extraction.
func (c *Client) ExtractAll(ctx context.Context, limit, pageSize int) ([]entities.RawPokemon, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if pageSize <= 0 || pageSize > limit {
		pageSize = limit
	}

	var refs []PokemonRef
	for offset := 0; len(refs) < limit; offset += pageSize {
		remaining := limit - len(refs)
		if remaining < pageSize {
			pageSize = remaining
		}

		page, err := c.ListPokemon(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		refs = append(refs, page.Results...)

		if page.Next == nil || len(page.Results) == 0 {
			break
		}
	}

	// A server that ignores the requested page size must not push the run
	// past its configured limit.
	if len(refs) > limit {
		refs = refs[:limit]
	}

	documents := make([]entities.RawPokemon, 0, len(refs))
	for _, ref := range refs {
		doc, err := c.GetPokemon(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch detail for %q: %w", ref.Name, err)
		}
		documents = append(documents, doc)
	}

	return documents, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{URL: rawURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
