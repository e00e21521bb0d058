package doaj

// searchResponse is the envelope of the DOAJ journal search API.
type searchResponse struct {
	Total   int      `json:"total"`
	Results []result `json:"results"`
}

type result struct {
	ID      string  `json:"id"`
	BibJSON bibJSON `json:"bibjson"`
}

// bibJSON is the journal record shape inside a DOAJ search result. Only
// the fields the verification pipeline consumes are mapped.
type bibJSON struct {
	Title     string    `json:"title"`
	PISSN     string    `json:"pissn"`
	EISSN     string    `json:"eissn"`
	Publisher publisher `json:"publisher"`
	Subject   []subject `json:"subject"`
	License   []license `json:"license"`
	APC       apc       `json:"apc"`
	Keywords  []string  `json:"keywords"`
}

type publisher struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type subject struct {
	Scheme string `json:"scheme"`
	Term   string `json:"term"`
	Code   string `json:"code"`
}

type license struct {
	Type string `json:"type"`
	BY   bool   `json:"BY"`
	NC   bool   `json:"NC"`
	ND   bool   `json:"ND"`
	SA   bool   `json:"SA"`
}

type apc struct {
	HasAPC bool       `json:"has_apc"`
	Max    []apcPrice `json:"max"`
}

type apcPrice struct {
	Price    int    `json:"price"`
	Currency string `json:"currency"`
}
