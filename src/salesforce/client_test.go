package salesforce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type staticTokenSource struct{ instanceURL string }

func (s staticTokenSource) Token() (*oauth2.Token, error) {
	tok := &oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"}
	return tok.WithExtra(map[string]any{"instance_url": s.instanceURL}), nil
}

func TestClient_FetchProductLines_Pagination(t *testing.T) {
	t.Parallel()

	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		queries = append(queries, r.URL.String())

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/services/data/v59.0/query" {
			json.NewEncoder(w).Encode(map[string]any{
				"totalSize":      2,
				"done":           false,
				"nextRecordsUrl": "/services/data/v59.0/query/01g-next",
				"records":        []map[string]any{{"Quantity__c": 1}},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"totalSize": 2,
			"done":      true,
			"records":   []map[string]any{{"Quantity__c": 2}},
		})
	}))
	defer srv.Close()

	c := NewClient(staticTokenSource{instanceURL: srv.URL}, "v59.0", 5*time.Second)
	records, err := c.FetchProductLines(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, queries, 2)
}

func TestClient_FetchProductLines_AccountNarrowing(t *testing.T) {
	t.Parallel()

	var soql string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		soql = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"totalSize": 0, "done": true, "records": []map[string]any{}})
	}))
	defer srv.Close()

	c := NewClient(staticTokenSource{instanceURL: srv.URL}, "v59.0", 5*time.Second)
	_, err := c.FetchProductLines(context.Background(), "  ABC-001  ")
	require.NoError(t, err)
	require.Contains(t, soql, `WHERE Account__r.Account_Code__c = 'ABC-001'`)
	require.Contains(t, soql, "ORDER BY Contract__r.CreatedDate DESC")
}

func TestClient_FetchProductLines_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `[{"errorCode":"INVALID_SESSION_ID"}]`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(staticTokenSource{instanceURL: srv.URL}, "v59.0", 5*time.Second)
	_, err := c.FetchProductLines(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestEscapeSOQL(t *testing.T) {
	t.Parallel()

	require.Equal(t, `O\'Brien`, escapeSOQL(`O'Brien`))
	require.Equal(t, `a\\b`, escapeSOQL(`a\b`))
}
