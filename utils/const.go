package utils

const (
	// MaxMessageLength is the hard per-message limit imposed by Telegram.
	MaxMessageLength = 4096

	MaxFilesizeDownload = 20000000 // Max filesize that can be downloaded from Telegram = 20MB

	ErrCantParseEntities = "can't parse entities"
)

// AllowedImageMimeTypes is the whitelist for document uploads; photo uploads
// are always re-encoded to JPEG by Telegram.
var AllowedImageMimeTypes = []string{"image/jpeg", "image/png"}
