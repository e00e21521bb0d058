package classify

import (
	"github.com/scholarly/verification-service/internal/domain"
)

// Rules holds the per-database keyword tables. Matching is
// case-insensitive substring against the journal name; Scopus also
// matches against the publisher.
type Rules struct {
	// Journal keyword tables keyed by database.
	Journal map[domain.IndexingDatabase][]string
	// ScopusPublishers are publisher keywords that imply Scopus coverage.
	ScopusPublishers []string
}

// DefaultRules returns the built-in classification tables. The tables
// are deliberately keyword-based: an exact-membership feed would need a
// licensed export, and substring rules over well-known journal and
// publisher names cover the bulk of real records.
func DefaultRules() Rules {
	return Rules{
		Journal: map[domain.IndexingDatabase][]string{
			domain.IndexSCI: {
				"nature", "science", "cell", "lancet", "nejm", "jama",
				"ieee transactions", "acm computing", "physical review letters",
				"journal of machine learning research", "neural information processing systems",
				"nucleic acids research", "genome research", "bioinformatics",
				"journal of the american chemical society", "angewandte chemie",
				"advanced materials", "nature materials", "nature nanotechnology",
				"proceedings of the national academy of sciences", "plos biology",
				"cell metabolism", "molecular cell", "developmental cell",
				"cancer cell", "immunity", "neuron", "current biology",
				"nature medicine", "nature genetics", "nature biotechnology",
				"science advances", "nature communications", "cell reports",
				"physical review",
			},
			domain.IndexScopus: {
				"elsevier", "wiley", "springer", "taylor", "sage", "emerald",
				"plos one", "scientific reports", "applied physics letters",
				"journal of applied physics", "materials science", "chemistry of materials",
				"journal of materials chemistry", "biomaterials",
				"journal of biomedical materials research",
				"oxford university press", "cambridge university press", "mit press",
				"harvard university press", "stanford university press", "academic press",
				"elsevier science", "wiley-blackwell", "springer nature",
				"frontiers in", "bmc", "hindawi", "mdpi",
			},
			domain.IndexESCI: {
				"frontiers in", "plos one", "scientific reports", "applied sciences",
				"materials", "sensors", "molecules", "polymers", "catalysts",
				"energies", "sustainability", "water", "atmosphere", "forests",
				"agronomy", "plants", "animals", "microorganisms", "viruses",
				"pathogens", "toxins", "marine drugs", "pharmaceuticals",
				"medicines", "vaccines", "antibiotics", "antioxidants",
				"nutrients", "foods", "beverages", "fermentation",
				"processes", "systems", "algorithms", "mathematics",
				"statistics", "probability", "engineering", "technology",
				"innovation", "research", "studies", "international journal",
				"journal of", "european journal", "asian journal", "american journal",
			},
			domain.IndexDOAJ: {
				"plos", "frontiers", "bmc", "hindawi", "mdpi", "cogent",
				"f1000research", "peerj", "scientific reports", "nature communications",
				"open access", "open science", "public library of science",
				"biomed central", "springer open", "wiley open access",
				"elsevier open access", "taylor francis open", "sage open",
				"emerald open research", "ieee open access", "acm open",
			},
			domain.IndexEI: {
				"ieee", "acm", "springer", "elsevier", "wiley", "taylor",
				"engineering", "technology", "computer", "software", "hardware",
				"electrical", "electronic", "mechanical", "civil", "chemical",
				"materials", "manufacturing", "automation", "robotics",
				"artificial intelligence", "machine learning", "data science",
				"cybersecurity", "networks", "communications", "signal processing",
				"control systems", "optimization", "algorithms", "computing",
				"information technology", "computer science", "engineering science",
				"applied mathematics", "statistics", "operations research",
			},
			domain.IndexPubMed: {
				"new england journal of medicine", "lancet", "jama", "bmj",
				"nature medicine", "cell", "science", "nature", "cell metabolism",
				"molecular cell", "developmental cell", "cancer cell", "immunity",
				"neuron", "current biology", "plos medicine", "plos biology",
				"plos one", "scientific reports", "nature communications",
				"cell reports", "molecular therapy", "cancer research",
				"journal of clinical investigation", "blood", "circulation",
				"journal of the american medical association", "annals of internal medicine",
				"archives of internal medicine", "mayo clinic proceedings",
				"cleveland clinic journal of medicine",
			},
			domain.IndexUGCCARE: {
				"indian journal", "journal of indian", "indian academy",
				"national academy", "indian institute", "indian university",
				"indian statistical institute", "tata institute", "iisc",
				"iit", "nit", "iim", "indian institute of science",
				"indian institute of technology", "national institute of technology",
				"indian institute of management", "all india institute of medical sciences",
				"post graduate institute", "indian council of medical research",
				"council of scientific", "indian national science academy",
				"indian academy of sciences", "indian academy of engineering",
			},
			domain.IndexScholar: {
				"arxiv", "researchgate", "academia", "ssrn", "zenodo",
				"figshare", "mendeley", "scholar", "academic", "university",
				"institute", "college", "research", "studies", "journal",
				"proceedings", "conference", "workshop", "symposium",
				"international", "national", "regional", "department",
				"faculty", "school", "division",
			},
			domain.IndexConference: {
				"conference", "proceedings", "workshop", "symposium",
				"international conference", "ieee conference", "acm conference",
				"international workshop", "annual meeting", "symposium on",
				"conference on", "workshop on", "international symposium",
				"conference proceedings", "workshop proceedings",
			},
			domain.IndexPreprint: {
				"arxiv", "biorxiv", "medrxiv", "chemrxiv", "preprint", "preprints",
				"research square", "ssrn", "zenodo", "figshare",
			},
		},
		ScopusPublishers: []string{
			"taylor", "sage", "emerald", "inderscience", "igi global",
			"world scientific", "de gruyter", "brill", "karger",
			"nature publishing", "cell press", "elsevier", "wiley", "springer",
			"ieee", "acm", "oxford university press", "cambridge university press",
		},
	}
}
