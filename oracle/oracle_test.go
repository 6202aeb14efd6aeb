package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/metrics"
)

const keggFound = `<html><head><title>KEGG COMPOUND: C00031</title></head>
<body><table><tr><td>Entry</td><td>C00031 Compound</td></tr>
<tr><td>Name</td><td>D-Glucose</td></tr></table></body></html>`

const keggNotFound = `<html><head><title>KEGG entry</title>
<script>var msg = "nothing";</script></head>
<body><div>No such data
  was found.</div></body></html>`

func registryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/entry/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "C00031", "R00200":
			_, _ = w.Write([]byte(keggFound))
		case "C99999":
			_, _ = w.Write([]byte(keggNotFound))
		case "gone":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	mux.HandleFunc("/uniprotkb/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sbmate-test", r.Header.Get("User-Agent"))
		switch r.PathValue("id") {
		case "P0DP23":
			_, _ = w.Write([]byte(`{"primaryAccession":"P0DP23"}`))
		case "P00000":
			w.WriteHeader(http.StatusNotFound)
		case "bad-id":
			w.WriteHeader(http.StatusBadRequest)
		case "slow":
			time.Sleep(200 * time.Millisecond)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, m *metrics.Metrics, timeout time.Duration) *Client {
	return New(Config{
		KEGGURL:    srv.URL + "/entry",
		UniProtURL: srv.URL + "/uniprotkb/",
		Timeout:    timeout,
		UserAgent:  "sbmate-test",
	}, WithMetrics(m))
}

func TestClient_Exists(t *testing.T) {
	srv := registryServer(t)
	c := newTestClient(srv, nil, 0)
	ctx := context.Background()

	tests := []struct {
		name    string
		res     annotation.Resource
		id      string
		want    bool
		wantErr bool
	}{
		{"kegg compound found", annotation.KEGGSpecies, "C00031", true, false},
		{"kegg reaction found", annotation.KEGGProcess, "R00200", true, false},
		{"kegg page says no data", annotation.KEGGSpecies, "C99999", false, false},
		{"kegg 404", annotation.KEGGSpecies, "gone", false, false},
		{"kegg upstream error", annotation.KEGGSpecies, "C00002", false, true},
		{"uniprot found", annotation.UniProt, "P0DP23", true, false},
		{"uniprot 404", annotation.UniProt, "P00000", false, false},
		{"uniprot 400", annotation.UniProt, "bad-id", false, false},
		{"uniprot 500", annotation.UniProt, "P12345", false, true},
		{"not a registry", annotation.GO, "GO:0008150", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Exists(ctx, tt.res, tt.id)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := registryServer(t)
	c := newTestClient(srv, nil, 20*time.Millisecond)

	_, err := c.Exists(context.Background(), annotation.UniProt, "slow")
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := registryServer(t)
	c := newTestClient(srv, nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Exists(ctx, annotation.UniProt, "P0DP23")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_Metrics(t *testing.T) {
	srv := registryServer(t)
	m := metrics.New()
	c := newTestClient(srv, m, 0)
	ctx := context.Background()

	_, _ = c.Exists(ctx, annotation.UniProt, "P0DP23")
	_, _ = c.Exists(ctx, annotation.UniProt, "P00000")
	_, _ = c.Exists(ctx, annotation.KEGGSpecies, "C00002")

	n, err := testutil.GatherAndCount(m.Registry(), "sbmate_oracle_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPageText(t *testing.T) {
	text, err := pageText(strings.NewReader(keggNotFound))
	require.NoError(t, err)
	assert.Contains(t, text, keggMissing)
	assert.NotContains(t, text, "nothing")
}
