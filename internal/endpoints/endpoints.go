// Package endpoints serves the self-describing catalog of the news API at
// GET /api. The catalog is embedded at build time.
package endpoints

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

//go:embed endpoints.json
var catalogJSON []byte

// Endpoint describes one route. Entries may carry only these four keys.
type Endpoint struct {
	Description     string          `json:"description"`
	Queries         []string        `json:"queries,omitempty"`
	Format          json.RawMessage `json:"format,omitempty"`
	ExampleResponse json.RawMessage `json:"exampleResponse,omitempty"`
}

// Catalog is keyed "<METHOD> <path>" with :param placeholders.
type Catalog map[string]Endpoint

// Load decodes the embedded catalog, rejecting unknown keys.
func Load() (Catalog, error) {
	return parse(catalogJSON)
}

func parse(data []byte) (Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode endpoint catalog: %w", err)
	}

	for key, e := range c {
		if e.Description == "" {
			return nil, fmt.Errorf("endpoint %q has no description", key)
		}
	}

	return c, nil
}

var chiParam = regexp.MustCompile(`\{([^}:]+)(:[^}]*)?\}`)

// Key builds the catalog key of a chi route, e.g. "GET /api/users/{username}"
// becomes "GET /api/users/:username".
func Key(method, pattern string) string {
	path := chiParam.ReplaceAllString(pattern, ":$1")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return method + " " + path
}

func (c Catalog) Has(method, pattern string) bool {
	_, ok := c[Key(method, pattern)]

	return ok
}

type API struct {
	catalog     Catalog
	sugarLogger *zap.SugaredLogger
}

func NewAPI(catalog Catalog, logger *zap.SugaredLogger) *API {
	return &API{catalog: catalog, sugarLogger: logger}
}

// Response renders {"endpoints": {...}}.
type Response struct {
	Endpoints Catalog `json:"endpoints"`
}

func (rd *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// GetAPI handles GET /api.
func (a *API) GetAPI(w http.ResponseWriter, r *http.Request) {
	if err := render.Render(w, r, &Response{Endpoints: a.catalog}); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}
