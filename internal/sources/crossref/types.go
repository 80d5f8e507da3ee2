package crossref

// Response is the top-level envelope of a Crossref works lookup.
type Response struct {
	Status  string `json:"status"`
	Message *Work  `json:"message"`
}

// Work is the Crossref citation-metadata record for one DOI. Only the
// fields the reconciler consumes are mapped.
type Work struct {
	Publisher      string   `json:"publisher"`
	ContainerTitle []string `json:"container-title"`
	ISSN           []string `json:"ISSN"`
	Volume         string   `json:"volume"`
	Issue          string   `json:"issue"`
	Page           string   `json:"page"`
	Abstract       string   `json:"abstract"`
	Type           string   `json:"type"`
	ReferenceCount int      `json:"reference-count"`
}

// JournalName returns the first container title, or empty.
func (w *Work) JournalName() string {
	if w == nil || len(w.ContainerTitle) == 0 {
		return ""
	}
	return w.ContainerTitle[0]
}
