package domain

import "strings"

// AudioTranslation is a spoken rendition of some HTML content in a single
// language.
type AudioTranslation struct {
	// Filename of the stored audio file, e.g. "intro.mp3".
	Filename string
	// FileSizeBytes is used to estimate download time; it need not be exact.
	FileSizeBytes int
	// NeedsUpdate is set when the translated content has changed since the
	// audio was recorded.
	NeedsUpdate bool
}

// NewAudioTranslationFromDict builds an AudioTranslation from its dict form.
func NewAudioTranslationFromDict(d map[string]any) (*AudioTranslation, error) {
	filename, err := stringAt(d, "filename")
	if err != nil {
		return nil, err
	}
	size, err := intAt(d, "file_size_bytes")
	if err != nil {
		return nil, err
	}
	needsUpdate, err := boolAt(d, "needs_update")
	if err != nil {
		return nil, err
	}
	return &AudioTranslation{
		Filename:      filename,
		FileSizeBytes: size,
		NeedsUpdate:   needsUpdate,
	}, nil
}

// ToDict returns the persistable form of the translation.
func (a *AudioTranslation) ToDict() map[string]any {
	return map[string]any{
		"filename":        a.Filename,
		"file_size_bytes": a.FileSizeBytes,
		"needs_update":    a.NeedsUpdate,
	}
}

// Validate checks the translation's filename and size.
func (a *AudioTranslation) Validate() error {
	dot := strings.LastIndex(a.Filename, ".")
	if a.Filename == "" || dot <= 0 || dot == len(a.Filename)-1 {
		return Validationf("invalid audio filename: %s", a.Filename)
	}
	ext := a.Filename[dot+1:]
	allowed := false
	for _, e := range AcceptedAudioExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return Validationf("invalid audio filename extension: %s", a.Filename)
	}
	if a.FileSizeBytes <= 0 {
		return Validationf("invalid file size: %d", a.FileSizeBytes)
	}
	return nil
}

// SubtitledHTML is a block of HTML content together with its audio
// translations, keyed by language code.
type SubtitledHTML struct {
	HTML              string
	AudioTranslations map[string]*AudioTranslation
}

// NewSubtitledHTML sanitizes html through caps and wraps it with no
// translations.
func NewSubtitledHTML(caps *Capabilities, html string) *SubtitledHTML {
	return &SubtitledHTML{
		HTML:              caps.clean(html),
		AudioTranslations: map[string]*AudioTranslation{},
	}
}

// NewSubtitledHTMLFromDict builds a SubtitledHTML from its dict form,
// sanitizing the HTML on the way in.
func NewSubtitledHTMLFromDict(caps *Capabilities, d map[string]any) (*SubtitledHTML, error) {
	html, err := optStringAt(d, "html")
	if err != nil {
		return nil, err
	}
	rawTranslations, err := mapAt(d, "audio_translations")
	if err != nil {
		return nil, err
	}
	translations := make(map[string]*AudioTranslation, len(rawTranslations))
	for languageCode, raw := range rawTranslations {
		td, err := asStringMap(raw)
		if err != nil {
			return nil, Validationf("audio translation %q: %v", languageCode, err)
		}
		t, err := NewAudioTranslationFromDict(td)
		if err != nil {
			return nil, Validationf("audio translation %q: %v", languageCode, err)
		}
		translations[languageCode] = t
	}
	return &SubtitledHTML{
		HTML:              caps.clean(html),
		AudioTranslations: translations,
	}, nil
}

// ToDict returns the persistable form of the content.
func (s *SubtitledHTML) ToDict() map[string]any {
	translations := map[string]any{}
	for languageCode, t := range s.AudioTranslations {
		translations[languageCode] = t.ToDict()
	}
	return map[string]any{
		"html":               s.HTML,
		"audio_translations": translations,
	}
}

// Validate checks each audio translation and its language code.
func (s *SubtitledHTML) Validate() error {
	for languageCode, t := range s.AudioTranslations {
		if !isSupportedAudioLanguageCode(languageCode) {
			return Validationf("unrecognized language code: %s", languageCode)
		}
		if t == nil {
			return Validationf("missing audio translation for language code: %s", languageCode)
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func isSupportedAudioLanguageCode(code string) bool {
	for _, c := range SupportedAudioLanguageCodes {
		if c == code {
			return true
		}
	}
	return false
}

func isSupportedLanguageCode(code string) bool {
	for _, c := range AllLanguageCodes {
		if c == code {
			return true
		}
	}
	return false
}
