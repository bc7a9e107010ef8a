package backend

// Category is a fixed topical grouping of documents.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Document is one search/browse result. Link is the external article URL
// and the only key carried to the article view.
type Document struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Link       string `json:"link"`
	CategoryID int    `json:"category_id"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// Summary holds the seven free-text fields of an article digest.
type Summary struct {
	Background            string `json:"Background"`
	KeyFindings           string `json:"KeyFindings"`
	Methodology           string `json:"Methodology"`
	EthicalConsiderations string `json:"EthicalConsiderations"`
	Implications          string `json:"Implications"`
	AdditionalNotes       string `json:"AdditionalNotes"`
	Conclusion            string `json:"Conclusion"`
}

// SummaryKeys lists the fixed summary keys as the backend names them.
var SummaryKeys = []string{
	"Background",
	"KeyFindings",
	"Methodology",
	"EthicalConsiderations",
	"Implications",
	"AdditionalNotes",
	"Conclusion",
}

// SummaryField pairs a summary key with its reader-facing label.
type SummaryField struct {
	Key   string
	Label string
}

// DisplayOrder is the order and labelling in which summary fields are shown.
var DisplayOrder = []SummaryField{
	{"Background", "Background & Context"},
	{"Methodology", "Methods & Study Design"},
	{"KeyFindings", "Key Results & Findings"},
	{"Implications", "Discussion & Implications"},
	{"Conclusion", "Conclusions"},
	{"EthicalConsiderations", "Ethical Considerations"},
	{"AdditionalNotes", "Additional Notes"},
}

// Field returns the summary text stored under one of SummaryKeys.
func (s Summary) Field(key string) string {
	switch key {
	case "Background":
		return s.Background
	case "KeyFindings":
		return s.KeyFindings
	case "Methodology":
		return s.Methodology
	case "EthicalConsiderations":
		return s.EthicalConsiderations
	case "Implications":
		return s.Implications
	case "AdditionalNotes":
		return s.AdditionalNotes
	case "Conclusion":
		return s.Conclusion
	}
	return ""
}

func (s *Summary) set(key, value string) {
	switch key {
	case "Background":
		s.Background = value
	case "KeyFindings":
		s.KeyFindings = value
	case "Methodology":
		s.Methodology = value
	case "EthicalConsiderations":
		s.EthicalConsiderations = value
	case "Implications":
		s.Implications = value
	case "AdditionalNotes":
		s.AdditionalNotes = value
	case "Conclusion":
		s.Conclusion = value
	}
}

// ArticleSummary is the backend-produced structured digest of one article.
type ArticleSummary struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Summary Summary  `json:"summary"`
	PDFURL  string   `json:"pdf_url,omitempty"`
}

// ChatRequest is the body of POST /chat_article.
type ChatRequest struct {
	Question       string `json:"question"`
	ArticleTitle   string `json:"article_title"`
	ArticleContext string `json:"article_context"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}
