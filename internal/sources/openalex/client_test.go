package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unikom-riset/bibliometrics/internal/sources"
)

func newTestFetcher() *sources.Client {
	return sources.NewClient(sources.ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     1,
		RetryBaseDelay: time.Millisecond,
		InterCallDelay: time.Microsecond,
	}, zerolog.Nop())
}

func newTestClient(serverURL string, maxPages int) *Client {
	return New(Config{
		BaseURL:       serverURL,
		InstitutionID: "I4210117444",
		PerPage:       10,
		MaxPages:      maxPages,
	}, newTestFetcher(), zerolog.Nop())
}

func TestListInstitutionAuthorsFollowsCursors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/authors", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("filter"), "last_known_institutions.id:I4210117444")

		cursor := r.URL.Query().Get("cursor")
		resp := AuthorListResponse{}
		switch cursor {
		case "*":
			resp.Results = []Author{{ID: "https://openalex.org/A1", DisplayName: "First Author"}}
			resp.Meta.NextCursor = "page2"
		case "page2":
			resp.Results = []Author{{ID: "https://openalex.org/A2", DisplayName: "Second Author"}}
			resp.Meta.NextCursor = ""
		default:
			t.Fatalf("unexpected cursor %q", cursor)
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	authors, err := newTestClient(srv.URL, 100).ListInstitutionAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "First Author", authors[0].DisplayName)
	assert.Equal(t, "Second Author", authors[1].DisplayName)
}

func TestListingTerminatesAtPageCap(t *testing.T) {
	// The server never returns an empty cursor; the cap must still stop
	// the listing.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := AuthorListResponse{
			Results: []Author{{ID: fmt.Sprintf("https://openalex.org/A%d", calls)}},
		}
		resp.Meta.NextCursor = fmt.Sprintf("page%d", calls+1)
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	authors, err := newTestClient(srv.URL, 5).ListInstitutionAuthors(context.Background())
	require.NoError(t, err, "hitting the cap truncates, it is not an error")
	assert.Len(t, authors, 5)
	assert.Equal(t, 5, calls)
}

func TestListAuthorWorksCachesByAuthor(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := WorkListResponse{
			Results: []Work{{ID: "https://openalex.org/W1", Title: "Cached Work"}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 100)

	first, err := client.ListAuthorWorks(context.Background(), "A1")
	require.NoError(t, err)
	second, err := client.ListAuthorWorks(context.Background(), "A1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second listing must be served from cache")
}

func TestSearchAuthorByNameBestMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Budi Santoso", r.URL.Query().Get("search"))
		resp := AuthorListResponse{
			Results: []Author{
				{ID: "https://openalex.org/A1", DisplayName: "Budi Santoso"},
				{ID: "https://openalex.org/A2", DisplayName: "Budi Santoso Jr"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	author, err := newTestClient(srv.URL, 100).
		SearchAuthorByName(context.Background(), "Budi Santoso", AcceptBestMatch{})
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.Equal(t, "https://openalex.org/A1", author.ID)
}

func TestSearchAuthorByNameExactOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := AuthorListResponse{
			Results: []Author{{ID: "https://openalex.org/A2", DisplayName: "Someone Else"}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	author, err := newTestClient(srv.URL, 100).
		SearchAuthorByName(context.Background(), "Budi Santoso", ExactMatchOnly{})
	require.NoError(t, err)
	assert.Nil(t, author, "no exact match means no author, not an error")
}

func TestReconstructAbstract(t *testing.T) {
	idx := map[string][]int{
		"deep":     {0},
		"learning": {1},
		"for":      {2},
		"graphs":   {3},
	}
	assert.Equal(t, "deep learning for graphs", ReconstructAbstract(idx))
	assert.Equal(t, "", ReconstructAbstract(nil))
}

func TestReconstructAbstractRepeatedWords(t *testing.T) {
	idx := map[string][]int{
		"the": {0, 2},
		"and": {1},
	}
	assert.Equal(t, "the and the", ReconstructAbstract(idx))
}
