// Package voices provides the catalog of supported text-to-speech voices
// and helpers for discovering which language models are available with the
// configured API keys.
package voices
