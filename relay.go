package lingobridge

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Classifier detects the language of a piece of text.
type Classifier interface {
	// Classify returns the best-guess language code and a confidence score
	// in [0, 1]. It fails on empty or undetectable text.
	Classify(text string) (Detection, error)
}

// Translator translates text between two languages.
type Translator interface {
	// Translate returns the text rendered in the target language. It must
	// return the input unchanged when source and target match, and respect
	// context cancellation.
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// RecordCache is the fast, volatile tier of relay record lookup.
type RecordCache interface {
	Get(key int64) (TranslationRecord, bool)
	Put(key int64, rec TranslationRecord)
	Remove(key int64)
}

// RecordStore is the durable tier of relay record lookup and the source of
// truth. The cache is reconstructible from the store, never the reverse.
type RecordStore interface {
	// Save persists a new record. It fails on duplicate forwarded id or I/O
	// error; the relay logs and degrades instead of crashing.
	Save(ctx context.Context, rec TranslationRecord) error
	FindByForwardedID(ctx context.Context, id int64) (TranslationRecord, bool, error)
	// DeleteOlderThan removes records created before now-age and returns the
	// number removed. Run as startup maintenance, not on a hot path.
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// Sender delivers outbound messages and reports the id assigned to them.
type Sender interface {
	Send(ctx context.Context, out OutboundMessage) (int64, error)
}

// ArchiveSink mirrors relayed messages into analytics storage.
type ArchiveSink interface {
	Archive(ctx context.Context, entry ArchiveEntry) error
}

// Default relay tuning, overridable through options.
const (
	DefaultPivotLanguage       = "en"
	DefaultConfidenceThreshold = 0.75
	DefaultTranslateTimeout    = 30 * time.Second
)

// Relay is the coordinator: it decides translate-or-pass on inbound messages,
// persists reply-back records, and resolves them when replies arrive.
//
// All collaborators are injected once at construction; the relay itself holds
// no mutable state and is safe for concurrent use.
type Relay struct {
	sender     Sender
	translator Translator
	classifier Classifier
	store      RecordStore
	cache      RecordCache
	lookup     *RecordLookup
	archive    ArchiveSink

	pivotLang        string
	threshold        float64
	translateTimeout time.Duration
	logger           *logrus.Logger
}

// RelayOption is a functional option for configuring the Relay.
type RelayOption func(*Relay)

// WithCache sets the fast lookup tier. Without it every reply resolves
// against the store.
func WithCache(cache RecordCache) RelayOption {
	return func(r *Relay) {
		r.cache = cache
	}
}

// WithArchive sets an analytics sink for relayed messages.
func WithArchive(sink ArchiveSink) RelayOption {
	return func(r *Relay) {
		r.archive = sink
	}
}

// WithPivotLanguage sets the common language forward translations target.
func WithPivotLanguage(lang string) RelayOption {
	return func(r *Relay) {
		r.pivotLang = NormalizeLanguage(lang)
	}
}

// WithConfidenceThreshold sets the minimum detection confidence below which
// messages pass through untranslated.
func WithConfidenceThreshold(threshold float64) RelayOption {
	return func(r *Relay) {
		r.threshold = threshold
	}
}

// WithTranslateTimeout bounds each translator call. A timeout is treated
// identically to a translator failure.
func WithTranslateTimeout(d time.Duration) RelayOption {
	return func(r *Relay) {
		r.translateTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

// NewRelay creates a relay coordinator with the given collaborators.
func NewRelay(sender Sender, translator Translator, classifier Classifier, store RecordStore, opts ...RelayOption) *Relay {
	r := &Relay{
		sender:           sender,
		translator:       translator,
		classifier:       classifier,
		store:            store,
		pivotLang:        DefaultPivotLanguage,
		threshold:        DefaultConfidenceThreshold,
		translateTimeout: DefaultTranslateTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logrus.New()
	}
	r.lookup = NewRecordLookup(r.cache, r.store, r.logger)

	return r
}

// Lookup exposes the read-through record lookup (cache, then store, with
// cache backfill on a store hit).
func (r *Relay) Lookup(ctx context.Context, forwardedID int64) (TranslationRecord, bool) {
	return r.lookup.Lookup(ctx, forwardedID)
}

// HandleInbound processes a non-reply inbound message: classify, maybe
// translate to the pivot language, forward, and persist the reply-back
// record. The returned Result names the terminal state; errors recovered at
// this boundary are reported through Result.Err, not the error return.
func (r *Relay) HandleInbound(ctx context.Context, msg Message) (*Result, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return &Result{Outcome: OutcomePassThrough}, nil
	}

	det, err := r.classifier.Classify(msg.Text)
	if err != nil {
		// Undetectable text is a routing decision, not an error.
		r.logger.WithError(err).WithField("message_id", msg.ID).
			Debug("classification failed, passing through")
		return &Result{Outcome: OutcomePassThrough}, nil
	}

	if SameLanguage(det.Language, r.pivotLang) || det.Confidence < r.threshold {
		r.logger.WithFields(logrus.Fields{
			"message_id": msg.ID,
			"language":   det.Language,
			"confidence": det.Confidence,
		}).Debug("pass-through")
		return &Result{Outcome: OutcomePassThrough, Language: det.Language, Confidence: det.Confidence}, nil
	}

	r.logger.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"language":   det.Language,
		"confidence": det.Confidence,
	}).Info("translating message to pivot language")

	translated, err := r.translate(ctx, TranslateRequest{
		Text:       msg.Text,
		SourceLang: det.Language,
		TargetLang: r.pivotLang,
	})
	if err != nil {
		fail := &TranslationFailure{Direction: DirectionForward, Cause: err}
		r.logger.WithError(fail).WithField("message_id", msg.ID).Error("forward translation failed")
		r.notifyFailure(ctx, msg, fail)
		return &Result{Outcome: OutcomeFailed, Language: det.Language, Confidence: det.Confidence, Err: fail}, nil
	}

	// The record is built entirely in memory before any side effect; the
	// forwarded id is the one field only the transport can supply.
	rec := TranslationRecord{
		OriginalMessageID: msg.ID,
		ConversationID:    msg.ConversationID,
		SenderID:          msg.SenderID,
		SourceLanguage:    NormalizeLanguage(det.Language),
		OriginalText:      msg.Text,
		TranslatedText:    translated,
		CreatedAt:         time.Now().UTC(),
	}

	// Thread the translation under the original message without notifying
	// the sender of their own message.
	forwardedID, err := r.sender.Send(ctx, OutboundMessage{
		ConversationID: msg.ConversationID,
		Text:           translated,
		ReplyTo:        msg.ID,
		Notify:         false,
	})
	if err != nil {
		fail := &TransportError{Message: "forwarding translated message", Cause: err}
		r.logger.WithError(fail).WithField("message_id", msg.ID).Error("forward send failed")
		return &Result{Outcome: OutcomeFailed, Language: det.Language, Confidence: det.Confidence, Err: fail}, nil
	}
	rec.ForwardedMessageID = forwardedID

	// Save to the store first, cache second. A cache entry must never exist
	// without a committed durable record behind it.
	if err := r.store.Save(ctx, rec); err != nil {
		pf := &PersistenceFailure{Op: "save", Cause: err}
		r.logger.WithError(pf).WithField("forwarded_message_id", forwardedID).
			Error("record not persisted; reply-back unavailable for this message")
	} else {
		if r.cache != nil {
			r.cache.Put(forwardedID, rec)
		}
		r.logger.WithField("forwarded_message_id", forwardedID).Debug("record stored")
	}

	r.archiveMessage(ctx, msg, rec)

	return &Result{
		Outcome:    OutcomeForwarded,
		Language:   det.Language,
		Confidence: det.Confidence,
		Record:     &rec,
	}, nil
}

// HandleReply processes a reply to a previously forwarded message: resolve
// the record, translate the reply back to the original sender's language, and
// deliver it as a reply to the original message with notification enabled.
func (r *Relay) HandleReply(ctx context.Context, msg Message) (*Result, error) {
	if msg.ReplyTo == 0 {
		return &Result{Outcome: OutcomePassThrough}, nil
	}

	rec, ok := r.lookup.Lookup(ctx, msg.ReplyTo)
	if !ok {
		// A reply to an ordinary message, not relay traffic.
		return &Result{Outcome: OutcomePassThrough}, nil
	}

	r.logger.WithFields(logrus.Fields{
		"forwarded_message_id": msg.ReplyTo,
		"source_language":      rec.SourceLanguage,
	}).Info("translating reply back to original language")

	translated, err := r.translate(ctx, TranslateRequest{
		Text:       msg.Text,
		SourceLang: r.pivotLang,
		TargetLang: rec.SourceLanguage,
	})
	if err != nil {
		fail := &TranslationFailure{Direction: DirectionReverse, Cause: err}
		r.logger.WithError(fail).WithField("forwarded_message_id", msg.ReplyTo).
			Error("reverse translation failed")
		r.notifyFailure(ctx, msg, fail)
		return &Result{Outcome: OutcomeFailed, Record: &rec, Err: fail}, nil
	}

	_, err = r.sender.Send(ctx, OutboundMessage{
		ConversationID: rec.ConversationID,
		Text:           translated,
		ReplyTo:        rec.OriginalMessageID,
		Notify:         true,
	})
	if err != nil {
		fail := &TransportError{Message: "delivering translated reply", Cause: err}
		r.logger.WithError(fail).WithField("forwarded_message_id", msg.ReplyTo).
			Error("reply delivery failed")
		return &Result{Outcome: OutcomeFailed, Record: &rec, Err: fail}, nil
	}

	return &Result{Outcome: OutcomeDelivered, Record: &rec}, nil
}

// Handle dispatches an inbound event to the reply or forward path based on
// whether it references a prior message.
func (r *Relay) Handle(ctx context.Context, msg Message) (*Result, error) {
	if msg.ReplyTo != 0 {
		return r.HandleReply(ctx, msg)
	}
	return r.HandleInbound(ctx, msg)
}

// translate runs the translator under the configured timeout.
func (r *Relay) translate(ctx context.Context, req TranslateRequest) (string, error) {
	if r.translateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.translateTimeout)
		defer cancel()
	}
	return r.translator.Translate(ctx, req)
}

// notifyFailure sends the stable user-facing message for a translation
// failure back to the author of msg. Best effort.
func (r *Relay) notifyFailure(ctx context.Context, msg Message, fail *TranslationFailure) {
	_, err := r.sender.Send(ctx, OutboundMessage{
		ConversationID: msg.ConversationID,
		Text:           fail.UserMessage(),
		ReplyTo:        msg.ID,
		Notify:         true,
	})
	if err != nil {
		r.logger.WithError(err).WithField("message_id", msg.ID).
			Warn("could not deliver failure notice")
	}
}

// archiveMessage mirrors a relayed message into the analytics sink. Best
// effort; archive failures never affect the relay outcome.
func (r *Relay) archiveMessage(ctx context.Context, msg Message, rec TranslationRecord) {
	if r.archive == nil {
		return
	}
	err := r.archive.Archive(ctx, ArchiveEntry{
		SenderID:       msg.SenderID,
		SenderUsername: msg.SenderUsername,
		SenderName:     msg.SenderName,
		ConversationID: msg.ConversationID,
		MessageID:      msg.ID,
		OriginalText:   msg.Text,
		SourceLanguage: rec.SourceLanguage,
		PivotText:      rec.TranslatedText,
		ReceivedAt:     rec.CreatedAt,
	})
	if err != nil {
		r.logger.WithError(err).WithField("message_id", msg.ID).Warn("archive write failed")
	}
}
