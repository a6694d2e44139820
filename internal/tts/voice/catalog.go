// Package voice maps languages and speaker roles to concrete provider voices.
package voice

// Recommended holds the default voice per supported language. The provider
// accepts many more voices; these are the ones used when a caller asks for a
// language rather than a specific voice.
var Recommended = map[string]string{
	// English varieties
	"en-US": "en-US-AvaNeural",
	"en-GB": "en-GB-LibbyNeural",
	"en-AU": "en-AU-NatashaNeural",
	"en-CA": "en-CA-ClaraNeural",
	"en-IN": "en-IN-NeerjaNeural",

	// Spanish varieties
	"es-ES": "es-ES-XimenaNeural",
	"es-MX": "es-MX-DaliaNeural",

	// Other European languages
	"fr-FR": "fr-FR-VivienneNeural",
	"de-DE": "de-DE-SeraphinaNeural",
	"it-IT": "it-IT-ElsaNeural",
	"pt-BR": "pt-BR-ThalitaNeural",
	"ru-RU": "ru-RU-SvetlanaNeural",
	"nl-NL": "nl-NL-ColetteNeural",
	"pl-PL": "pl-PL-ZofiaNeural",
	"sv-SE": "sv-SE-SofieNeural",
	"tr-TR": "tr-TR-EmelNeural",

	// Asian languages
	"zh-CN": "zh-CN-XiaoxiaoNeural",
	"zh-TW": "zh-TW-HsiaoChenNeural",
	"ja-JP": "ja-JP-NanamiNeural",
	"ko-KR": "ko-KR-SunHiNeural",
	"hi-IN": "hi-IN-SwaraNeural",
	"ar-SA": "ar-SA-ZariyahNeural",
	"th-TH": "th-TH-AcharaNeural",
	"vi-VN": "vi-VN-HoaiMyNeural",

	// Other languages
	"he-IL": "he-IL-HilaNeural",
	"id-ID": "id-ID-GadisNeural",
	"ms-MY": "ms-MY-YasminNeural",
	"uk-UA": "uk-UA-PolinaNeural",
	"cs-CZ": "cs-CZ-VlastaNeural",
	"hu-HU": "hu-HU-NoemiNeural",
	"ro-RO": "ro-RO-AlinaNeural",
	"fi-FI": "fi-FI-SelmaNeural",
	"da-DK": "da-DK-ChristelNeural",
	"no-NO": "nb-NO-IselinNeural",
}

// LanguageNames maps language codes to display names.
var LanguageNames = map[string]string{
	"en-US": "English (US)",
	"en-GB": "English (UK)",
	"en-AU": "English (Australia)",
	"en-CA": "English (Canada)",
	"en-IN": "English (India)",
	"es-ES": "Spanish (Spain)",
	"es-MX": "Spanish (Mexico)",
	"fr-FR": "French",
	"de-DE": "German",
	"it-IT": "Italian",
	"pt-BR": "Portuguese (Brazil)",
	"ru-RU": "Russian",
	"nl-NL": "Dutch",
	"pl-PL": "Polish",
	"sv-SE": "Swedish",
	"tr-TR": "Turkish",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"ja-JP": "Japanese",
	"ko-KR": "Korean",
	"hi-IN": "Hindi",
	"ar-SA": "Arabic",
	"th-TH": "Thai",
	"vi-VN": "Vietnamese",
	"he-IL": "Hebrew",
	"id-ID": "Indonesian",
	"ms-MY": "Malay",
	"uk-UA": "Ukrainian",
	"cs-CZ": "Czech",
	"hu-HU": "Hungarian",
	"ro-RO": "Romanian",
	"fi-FI": "Finnish",
	"da-DK": "Danish",
	"no-NO": "Norwegian",
}

// RolePair is the fixed (male, female) voice pair used for conversation
// synthesis in one language.
type RolePair struct {
	Male   string
	Female string
}

// Conversation holds the speaker-role voice pairs per language supported by
// conversation synthesis. A plain lookup table, not a dispatch hierarchy.
var Conversation = map[string]RolePair{
	"en-US": {Male: "en-US-GuyNeural", Female: "en-US-AriaNeural"},
	"en-GB": {Male: "en-GB-RyanNeural", Female: "en-GB-SoniaNeural"},
	"es-ES": {Male: "es-ES-AlvaroNeural", Female: "es-ES-ElviraNeural"},
	"fr-FR": {Male: "fr-FR-HenriNeural", Female: "fr-FR-DeniseNeural"},
	"de-DE": {Male: "de-DE-ConradNeural", Female: "de-DE-KatjaNeural"},
	"it-IT": {Male: "it-IT-DiegoNeural", Female: "it-IT-ElsaNeural"},
	"pt-BR": {Male: "pt-BR-AntonioNeural", Female: "pt-BR-FranciscaNeural"},
	"ja-JP": {Male: "ja-JP-KeitaNeural", Female: "ja-JP-NanamiNeural"},
	"zh-CN": {Male: "zh-CN-YunxiNeural", Female: "zh-CN-XiaoxiaoNeural"},
	"ko-KR": {Male: "ko-KR-InJoonNeural", Female: "ko-KR-SunHiNeural"},
	"hi-IN": {Male: "hi-IN-MadhurNeural", Female: "hi-IN-SwaraNeural"},
	"ru-RU": {Male: "ru-RU-DmitryNeural", Female: "ru-RU-SvetlanaNeural"},
}

// DefaultVoice is used when a text-to-speech caller specifies neither a voice
// nor a language.
const DefaultVoice = "en-US-GuyNeural"
