package corpus

// SourceKind identifies where a document's text was scraped from.
type SourceKind string

const (
	// SourceWikipedia marks documents ingested from the Wikipedia API.
	SourceWikipedia SourceKind = "Wikipedia"
	// SourceWeb marks documents ingested from an arbitrary web page.
	SourceWeb SourceKind = "Web"
)

// Entity is a named research subject with its accumulated documents.
// Names are unique case-insensitively; the stored name preserves the
// canonical form resolved by the source.
type Entity struct {
	Name      string     `json:"entity"`
	Documents []Document `json:"documents"`
}

// Document is one ingested source. It is immutable once created and owned
// exclusively by its entity. Chunk order preserves the source word order.
type Document struct {
	Source SourceKind `json:"source"`
	URL    string     `json:"url"`
	Chunks []Chunk    `json:"chunks"`
}

// Chunk is a fixed-size contiguous slice of a document's word stream.
// Text is non-empty after trimming; empty chunks are never stored.
type Chunk struct {
	Text string `json:"text"`
}
