package lingobridge

import "strings"

// LanguageNames maps ISO 639-1 codes to human-readable names for LLM prompts.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"ro": "Romanian",
	"cs": "Czech",
	"sk": "Slovak",
	"hu": "Hungarian",
	"bg": "Bulgarian",
	"el": "Greek",
	"sv": "Swedish",
	"da": "Danish",
	"nb": "Norwegian Bokmål",
	"no": "Norwegian",
	"fi": "Finnish",
	"ru": "Russian",
	"uk": "Ukrainian",
	"sr": "Serbian",
	"hr": "Croatian",
	"sl": "Slovenian",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"et": "Estonian",
	"tr": "Turkish",
	"ar": "Arabic",
	"he": "Hebrew",
	"fa": "Persian",
	"ur": "Urdu",
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"vi": "Vietnamese",
	"id": "Indonesian",
	"ms": "Malay",
	"tl": "Tagalog",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"sw": "Swahili",
	"am": "Amharic",
	"ka": "Georgian",
	"hy": "Armenian",
	"az": "Azerbaijani",
	"kk": "Kazakh",
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	base := NormalizeLanguage(langCode)
	if name, ok := LanguageNames[base]; ok {
		return name
	}
	return langCode
}

// NormalizeLanguage reduces a language tag to its lowercase base code
// (e.g. "es-MX" or "es_MX" → "es").
func NormalizeLanguage(langCode string) string {
	code := strings.ReplaceAll(langCode, "-", "_")
	if i := strings.Index(code, "_"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// SameLanguage reports whether two language tags share a base code.
func SameLanguage(a, b string) bool {
	return NormalizeLanguage(a) == NormalizeLanguage(b)
}
