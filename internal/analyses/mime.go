package analyses

import (
	"path/filepath"
	"strings"
)

// defaultMIMEType is used when the extension is not in the table. Recordings
// from the web widget arrive without a reliable extension and are webm.
const defaultMIMEType = "audio/webm"

var mimeByExtension = map[string]string{
	".webm": "audio/webm",
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
}

// ResolveMIMEType maps a filename to the transport MIME type by extension
// alone. Unrecognized extensions fall back to audio/webm.
func ResolveMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if mimeType, ok := mimeByExtension[ext]; ok {
		return mimeType
	}
	return defaultMIMEType
}

// AllowedAudioExtension reports whether the filename carries one of the
// accepted upload extensions.
func AllowedAudioExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	_, ok := mimeByExtension[ext]
	return ok
}
