// Package detect identifies the corpus language for the run summary.
package detect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// The candidate set is kept small; a narrower set keeps lingua accurate on
// short samples.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
}

// maxSampleBytes caps how much text the detector sees.
const maxSampleBytes = 4096

// Language returns the ISO 639-1 code of the sample's language, or ok=false
// when the sample is empty or no candidate is confident.
func Language(sample string) (string, bool) {
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return "", false
	}
	if len(sample) > maxSampleBytes {
		sample = sample[:maxSampleBytes]
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(candidates...).
		Build()

	lang, ok := detector.DetectLanguageOf(sample)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
