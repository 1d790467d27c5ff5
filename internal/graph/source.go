package graph

import (
	"context"

	"github.com/conetlab/conet/internal/openalex"
)

// Source supplies the author metadata and per-work authorship lists the
// builder consumes. Implementations must be safe for sequential reuse;
// the builder never calls a Source concurrently.
type Source interface {
	// AuthorDetails resolves full metadata for one author.
	AuthorDetails(ctx context.Context, id string) (AuthorDetails, error)

	// WorkAuthorships returns, for each recent work of the author, the IDs
	// of every author on that work (including the author itself).
	WorkAuthorships(ctx context.Context, id string) ([][]string, error)
}

// DetailsCache is an optional read-through cache for author details.
type DetailsCache interface {
	Get(ctx context.Context, id string) (AuthorDetails, bool, error)
	Put(ctx context.Context, d AuthorDetails) error
}

// APISource adapts the OpenAlex client to the Source interface, with an
// optional details cache in front of the authors endpoint.
type APISource struct {
	client     *openalex.Client
	cache      DetailsCache
	worksLimit int
}

// NewAPISource creates a Source backed by the OpenAlex API. cache may be nil.
func NewAPISource(client *openalex.Client, cache DetailsCache) *APISource {
	return &APISource{
		client:     client,
		cache:      cache,
		worksLimit: openalex.DefaultWorksLimit,
	}
}

// AuthorDetails resolves author metadata, consulting the cache first.
func (s *APISource) AuthorDetails(ctx context.Context, id string) (AuthorDetails, error) {
	id = openalex.NormalizeID(id)

	if s.cache != nil {
		if d, ok, err := s.cache.Get(ctx, id); err == nil && ok {
			return d, nil
		}
	}

	author, err := s.client.GetAuthor(ctx, id)
	if err != nil {
		return AuthorDetails{}, err
	}

	d := AuthorDetails{
		ID:          id,
		Label:       author.DisplayName,
		Institution: author.InstitutionName(),
		WorksCount:  author.WorksCount,
		URL:         author.ID,
	}
	if d.Label == "" {
		d.Label = id
	}

	if s.cache != nil {
		// Cache failures only cost a refetch later.
		_ = s.cache.Put(ctx, d)
	}
	return d, nil
}

// WorkAuthorships fetches the author's recent works and flattens each one
// to its authorship ID list.
func (s *APISource) WorkAuthorships(ctx context.Context, id string) ([][]string, error) {
	works, err := s.client.GetWorks(ctx, id, s.worksLimit)
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(works.Results))
	for _, w := range works.Results {
		ids := make([]string, 0, len(w.Authorships))
		for _, au := range w.Authorships {
			if au.Author == nil {
				continue
			}
			if aid := openalex.NormalizeID(au.Author.ID); aid != "" {
				ids = append(ids, aid)
			}
		}
		out = append(out, ids)
	}
	return out, nil
}
