// Package crossref provides a client for the Crossref works API.
//
// Crossref is the DOI registration agency for scholarly publishing and
// serves as both the exact-lookup registry for DOIs and the fuzzy
// title+author search registry.
//
// API Documentation: https://api.crossref.org
package crossref

// workResponse is the top-level response for a single-work lookup.
type workResponse struct {
	Status  string `json:"status"`
	Message Work   `json:"message"`
}

// searchResponse is the top-level response for a works search.
type searchResponse struct {
	Status  string `json:"status"`
	Message struct {
		TotalResults int    `json:"total-results"`
		Items        []Work `json:"items"`
	} `json:"message"`
}

// Work represents one registered work in the Crossref schema.
type Work struct {
	DOI             string     `json:"DOI"`
	Title           []string   `json:"title"`
	Author          []Author   `json:"author"`
	ContainerTitle  []string   `json:"container-title"`
	Publisher       string     `json:"publisher"`
	ISSN            []string   `json:"ISSN"`
	Abstract        string     `json:"abstract"`
	URL             string     `json:"URL"`
	Type            string     `json:"type"`
	Volume          string     `json:"volume"`
	Issue           string     `json:"issue"`
	Page            string     `json:"page"`
	ReferencedBy    int        `json:"is-referenced-by-count"`
	PublishedPrint  *DateParts `json:"published-print"`
	PublishedOnline *DateParts `json:"published-online"`
	Created         *DateParts `json:"created"`
	Issued          *DateParts `json:"issued"`
	Subject         []string   `json:"subject"`
}

// Author is one entry of a work's author list.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateParts holds Crossref's nested [[year, month, day]] date encoding.
type DateParts struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the year component, or 0 when absent.
func (d *DateParts) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}
