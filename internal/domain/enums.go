package domain

// TransactionType is the direction of money movement on an entry.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// EntryStatus is the settlement state of a ledger entry.
type EntryStatus string

const (
	StatusCompleted EntryStatus = "Completed"
	StatusPending   EntryStatus = "Pending"
)

// Source identifies which ingestion path produced an entry.
type Source string

const (
	SourceManual Source = "manual"
	SourceScan   Source = "scan"
	SourceVoice  Source = "voice"
)

// AllowedImageTypes maps accepted receipt image MIME types to file extensions.
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// AllowedAudioTypes maps accepted voice clip MIME types to file extensions.
// The extension is also used to name the clip for the transcription service.
var AllowedAudioTypes = map[string]string{
	"audio/webm":  "webm",
	"audio/ogg":   "ogg",
	"audio/mp4":   "mp4",
	"audio/x-m4a": "m4a",
	"audio/wav":   "wav",
	"audio/mpeg":  "mp3",
	"audio/aac":   "aac",
}
