package port

import "context"

// ExtractedItem is one line item as reported by the extraction service.
// Category is a suggestion; the resolver validates it against the caller's
// category set.
type ExtractedItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
}

// Extraction is the structured result of a vision or language extraction call.
type Extraction struct {
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Items       []ExtractedItem `json:"items"`
}

// Extractor abstracts the external service that turns unstructured media
// into an Extraction. Both calls are first-shot: a malformed response is an
// error, never retried with a correction loop.
type Extractor interface {
	// ExtractReceipt parses a receipt or invoice image.
	ExtractReceipt(ctx context.Context, image []byte, contentType string, categories []string) (*Extraction, error)
	// ExtractUtterance parses a transcribed spoken description of a transaction.
	ExtractUtterance(ctx context.Context, transcript string, categories []string) (*Extraction, error)
}

// Transcriber abstracts the external speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// ClassifierItem is the wire shape the classification service expects:
// item name plus its extended (quantity-inclusive) price.
type ClassifierItem struct {
	Name       string  `json:"name"`
	TotalPrice float64 `json:"totalPrice"`
}

// Classifier abstracts the external text-classification service. It returns
// spend-per-category for the whole bill, keyed by names from the supplied
// category list.
type Classifier interface {
	CategorizeItems(ctx context.Context, items []ClassifierItem, categories []string) (map[string]float64, error)
}
