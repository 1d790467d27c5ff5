package openalex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authors" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "lovelace" {
			t.Errorf("search param = %q, want %q", got, "lovelace")
		}
		if got := r.URL.Query().Get("per-page"); got != "5" {
			t.Errorf("per-page param = %q, want %q", got, "5")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"id":"https://openalex.org/A1","display_name":"Ada Lovelace",
			 "works_count":12,
			 "last_known_institution":{"display_name":"Analytical Engine Institute"}},
			{"id":"https://openalex.org/A2","display_name":"A. Lovelace"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	resp, err := client.SearchAuthors(context.Background(), "lovelace", 5)
	if err != nil {
		t.Fatalf("SearchAuthors: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].ShortID() != "A1" {
		t.Errorf("short id = %q, want A1", resp.Results[0].ShortID())
	}
	if resp.Results[0].InstitutionName() != "Analytical Engine Institute" {
		t.Errorf("institution = %q", resp.Results[0].InstitutionName())
	}
	if resp.Results[1].InstitutionName() != "" {
		t.Errorf("expected empty institution, got %q", resp.Results[1].InstitutionName())
	}
}

func TestGetAuthorNormalizesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authors/A7" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":"https://openalex.org/A7","display_name":"Grace Hopper","works_count":3}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	author, err := client.GetAuthor(context.Background(), "https://openalex.org/A7")
	if err != nil {
		t.Fatalf("GetAuthor: %v", err)
	}
	if author.DisplayName != "Grace Hopper" {
		t.Errorf("display name = %q", author.DisplayName)
	}
	if author.WorksCount != 3 {
		t.Errorf("works count = %d, want 3", author.WorksCount)
	}
}

func TestGetWorksParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("filter"); got != "authorships.author.id:A7" {
			t.Errorf("filter = %q", got)
		}
		if got := q.Get("select"); got != "authorships" {
			t.Errorf("select = %q", got)
		}
		w.Write([]byte(`{"results":[
			{"authorships":[
				{"author":{"id":"https://openalex.org/A7","display_name":"Grace Hopper"}},
				{"author":{"id":"https://openalex.org/A8","display_name":"Howard Aiken"}}
			]}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	works, err := client.GetWorks(context.Background(), "A7", 0)
	if err != nil {
		t.Fatalf("GetWorks: %v", err)
	}
	if len(works.Results) != 1 {
		t.Fatalf("expected 1 work, got %d", len(works.Results))
	}
	if len(works.Results[0].Authorships) != 2 {
		t.Errorf("expected 2 authorships, got %d", len(works.Results[0].Authorships))
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "not found", status: 404, check: IsNotFound},
		{name: "rate limited", status: 429, check: IsRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewClient(WithBaseURL(srv.URL))
			_, err := client.GetAuthor(context.Background(), "A1")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("error %v not classified as %s", err, tt.name)
			}
		})
	}
}

func TestServerErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream sad"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.SearchAuthors(context.Background(), "x", 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestMailtoParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("mailto"); got != "team@example.org" {
			t.Errorf("mailto = %q", got)
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithMailto("team@example.org"))
	if _, err := client.SearchAuthors(context.Background(), "x", 1); err != nil {
		t.Fatalf("SearchAuthors: %v", err)
	}
}
