package synth

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/snonux/voxtrain/internal"
)

const maxSlugLen = 30

// trainFilename builds the audio filename for one synthesized sentence:
// train_<timestamp>_<slug>.wav. The slug is taken from the first few words
// of the sentence so files stay recognizable in a directory listing.
func trainFilename(text string, now time.Time) string {
	return fmt.Sprintf("train_%s_%s.wav", now.Format("20060102_150405"), slugify(text))
}

func slugify(text string) string {
	words := strings.Fields(text)
	if len(words) > 4 {
		words = words[:4]
	}
	slug := internal.SanitizeFilename(strings.Join(words, "_"))
	slug = strings.Trim(slug, "_")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	if slug == "" {
		slug = "audio"
	}
	return slug
}
