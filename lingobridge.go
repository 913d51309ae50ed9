// Package lingobridge implements a translation relay for chat conversations.
//
// Incoming messages are language-detected and, when foreign, translated to a
// pivot language (English by default) and forwarded into the conversation.
// Replies to a forwarded message are translated back to the original sender's
// language and delivered as a reply to the original message. The linkage
// between a forwarded message and its origin is kept in a bounded LRU+TTL
// cache backed by a durable store.
//
// Basic usage:
//
//	import (
//	    "github.com/lingobridge/lingobridge"
//	    "github.com/lingobridge/lingobridge/cache"
//	    "github.com/lingobridge/lingobridge/detect"
//	    "github.com/lingobridge/lingobridge/provider"
//	    "github.com/lingobridge/lingobridge/store"
//	    "github.com/lingobridge/lingobridge/transport"
//	)
//
//	func main() {
//	    st, _ := store.NewSQLiteStore("data/relay.db")
//	    tr, _ := transport.NewTelegramTransport(os.Getenv("TELEGRAM_BOT_TOKEN"), false, nil)
//	    p := provider.NewLLMTranslator(provider.LLMConfig{APIKey: os.Getenv("GROQ_API_KEY")})
//
//	    relay := lingobridge.NewRelay(tr, p, detect.NewDetector(), st,
//	        lingobridge.WithCache(cache.NewMemoryCache(100, 30*time.Minute)),
//	    )
//	    tr.Listen(context.Background(), relay)
//	}
package lingobridge
