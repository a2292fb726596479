package speech

import (
	"strings"

	"mouthpiece/models"
)

// language codes the translate-backed providers accept
var translateVoices = []models.Voice{
	{ID: "en", Name: "English", Languages: []string{"en"}},
	{ID: "zh-CN", Name: "Chinese (Mandarin)", Languages: []string{"zh-CN", "cmn"}},
	{ID: "zh-TW", Name: "Chinese (Taiwan)", Languages: []string{"zh-TW"}},
	{ID: "ja", Name: "Japanese", Languages: []string{"ja"}},
	{ID: "ko", Name: "Korean", Languages: []string{"ko"}},
	{ID: "de", Name: "German", Languages: []string{"de"}},
	{ID: "fr", Name: "French", Languages: []string{"fr"}},
	{ID: "es", Name: "Spanish", Languages: []string{"es"}},
	{ID: "it", Name: "Italian", Languages: []string{"it"}},
	{ID: "ru", Name: "Russian", Languages: []string{"ru"}},
	{ID: "pt", Name: "Portuguese", Languages: []string{"pt"}},
	{ID: "vi", Name: "Vietnamese", Languages: []string{"vi"}},
	{ID: "th", Name: "Thai", Languages: []string{"th"}},
}

var defaultVoiceKeys = []string{"zh", "cmn", "mandarin", "tw", "chinese"}

// PickDefault chooses the startup voice: a Mandarin-ish one when the
// engine offers it, otherwise the first enumerated voice.
func PickDefault(voices []models.Voice) (models.Voice, bool) {
	for _, v := range voices {
		hay := strings.ToLower(v.Name + " " + strings.Join(v.Languages, ","))
		for _, key := range defaultVoiceKeys {
			if strings.Contains(hay, key) {
				return v, true
			}
		}
	}
	if len(voices) > 0 {
		return voices[0], true
	}
	return models.Voice{}, false
}
