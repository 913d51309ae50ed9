package lingobridge

import "time"

// TranslationRecord links a forwarded (translated) message back to the
// message it was translated from. Records are immutable once created: they
// are written exactly once by the relay and only ever read or deleted.
type TranslationRecord struct {
	ForwardedMessageID int64     // Identity of the outbound translated message (primary key)
	OriginalMessageID  int64     // The inbound message the translation was made from
	ConversationID     int64     // Chat/thread the exchange belongs to
	SenderID           int64     // Author of the original message
	SourceLanguage     string    // ISO 639-1 code of the original message (e.g. "es")
	OriginalText       string    // Inbound text as received
	TranslatedText     string    // Pivot-language text that was forwarded
	CreatedAt          time.Time // Record creation time (UTC)
}

// Message is an inbound chat event delivered by a transport.
type Message struct {
	ConversationID int64
	ID             int64
	SenderID       int64
	SenderName     string // Display name, for archiving
	SenderUsername string // Handle, for archiving (may be empty)
	Text           string
	ReplyTo        int64 // Message id this is a reply to; 0 when not a reply
}

// OutboundMessage is a send request handed to a transport.
type OutboundMessage struct {
	ConversationID int64
	Text           string
	ReplyTo        int64 // Message id the outbound message should thread under
	Notify         bool  // Whether the recipient should be notified
}

// Detection is the result of language classification.
type Detection struct {
	Language   string  // ISO 639-1 code, e.g. "es"
	Confidence float64 // In [0, 1]
}

// Outcome is the terminal state of one relay attempt.
type Outcome string

const (
	// OutcomePassThrough means the message was left as-is: already in the
	// pivot language, detection confidence too low, or an ordinary reply
	// with no relay record behind it.
	OutcomePassThrough Outcome = "pass_through"
	// OutcomeForwarded means the message was translated and forwarded, and
	// a record was created for reply-back.
	OutcomeForwarded Outcome = "forwarded"
	// OutcomeDelivered means a reply was reverse-translated and delivered
	// to the original sender.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeFailed means a step errored; Err on the Result carries the cause.
	OutcomeFailed Outcome = "failed"
)

// Result describes what the relay did with one inbound event.
type Result struct {
	Outcome    Outcome
	Language   string             // Detected language, when classification ran
	Confidence float64            // Detection confidence, when classification ran
	Record     *TranslationRecord // The record created (forward) or resolved (reverse)
	Err        error              // Cause, when Outcome is OutcomeFailed
}

// ArchiveEntry is the analytics mirror of a relayed message.
type ArchiveEntry struct {
	SenderID       int64
	SenderUsername string
	SenderName     string
	ConversationID int64
	MessageID      int64
	OriginalText   string
	SourceLanguage string
	PivotText      string // Pivot-language rendition of the message
	ReceivedAt     time.Time
}
