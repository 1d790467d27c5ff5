// Package openalex provides a client for the OpenAlex REST API.
package openalex

// Author represents an author record from the OpenAlex API.
type Author struct {
	ID          string       `json:"id"` // Full URL form, e.g. https://openalex.org/A123
	DisplayName string       `json:"display_name"`
	WorksCount  int          `json:"works_count,omitempty"`
	Institution *Institution `json:"last_known_institution,omitempty"`
}

// Institution is the last known institution attached to an author.
type Institution struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code,omitempty"`
}

// ShortID returns the bare author identifier with the URL prefix stripped.
func (a Author) ShortID() string {
	return NormalizeID(a.ID)
}

// InstitutionName returns the author's institution display name, or "" if unknown.
func (a Author) InstitutionName() string {
	if a.Institution == nil {
		return ""
	}
	return a.Institution.DisplayName
}

// AuthorsResponse is the response from the author search endpoint.
type AuthorsResponse struct {
	Results []Author `json:"results"`
}

// Work represents a work record, limited to the authorship list.
type Work struct {
	Authorships []Authorship `json:"authorships"`
}

// Authorship links a work to one of its authors.
type Authorship struct {
	Author *WorkAuthor `json:"author,omitempty"`
}

// WorkAuthor is the author summary embedded in an authorship.
type WorkAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// WorksResponse is the response from the works endpoint.
type WorksResponse struct {
	Results []Work `json:"results"`
}
