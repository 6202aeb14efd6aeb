// Package oracle checks whether KEGG and UniProt identifiers exist by asking
// the registries over HTTP. Lookups are not cached.
package oracle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/oops"
	"golang.org/x/net/html"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/metrics"
)

const (
	DefaultKEGGURL    = "https://www.genome.jp/entry"
	DefaultUniProtURL = "https://rest.uniprot.org/uniprotkb"

	// keggMissing is shown on genome.jp entry pages for unknown ids.
	keggMissing = "No such data was found"

	maxBodySize = 4 << 20
)

// Config holds the endpoints and request settings. A zero Timeout means
// requests are only bounded by the caller's context.
type Config struct {
	KEGGURL    string
	UniProtURL string
	Timeout    time.Duration
	UserAgent  string
}

// Client is an existence oracle backed by the public registries. It is safe
// for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.KEGGURL == "" {
		cfg.KEGGURL = DefaultKEGGURL
	}
	if cfg.UniProtURL == "" {
		cfg.UniProtURL = DefaultUniProtURL
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists reports whether id is a known entry of res. A registry answer of
// "not found" is (false, nil); transport failures and unexpected responses
// are returned as errors so the caller can tell them apart.
func (c *Client) Exists(ctx context.Context, res annotation.Resource, id string) (bool, error) {
	errb := oops.In("oracle").With("resource", res, "id", id)

	var check func(context.Context, string) (bool, error)
	switch res {
	case annotation.KEGGSpecies, annotation.KEGGProcess:
		check = c.keggExists
	case annotation.UniProt:
		check = c.uniprotExists
	default:
		return false, errb.Code("unsupported_resource").Errorf("no registry lookup for %s", res)
	}

	start := time.Now()
	ok, err := check(ctx, id)
	elapsed := time.Since(start)

	outcome := "found"
	switch {
	case err != nil:
		outcome = "error"
	case !ok:
		outcome = "missing"
	}
	c.metrics.ObserveLookup(string(res), outcome, elapsed)
	c.logger.Debug("Registry lookup",
		"resource", res,
		"id", id,
		"outcome", outcome,
		"elapsed", elapsed)

	if err != nil {
		return false, errb.Code("lookup_failed").Wrapf(err, "look up %s %s", res, id)
	}
	return ok, nil
}

func (c *Client) get(ctx context.Context, base, id string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(base, "/")+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	return c.http.Do(req)
}

// keggExists fetches the genome.jp entry page. Unknown ids still get a
// 200 page, so the page text decides.
func (c *Client) keggExists(ctx context.Context, id string) (bool, error) {
	resp, err := c.get(ctx, c.cfg.KEGGURL, id)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %s", resp.Status)
	}

	text, err := pageText(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return false, err
	}
	return !strings.Contains(text, keggMissing), nil
}

func (c *Client) uniprotExists(ctx context.Context, id string) (bool, error) {
	resp, err := c.get(ctx, c.cfg.UniProtURL, id)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusBadRequest, http.StatusNotFound:
		return false, nil
	}
	return false, fmt.Errorf("unexpected status %s", resp.Status)
}

// pageText returns the visible text of an HTML document with whitespace
// runs collapsed.
func pageText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " "), nil
}
