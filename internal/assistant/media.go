package assistant

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	docxMediaType        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	octetStreamMediaType = "application/octet-stream"
)

var supportedMediaTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"text/plain":      true,
	"application/pdf": true,
	docxMediaType:     true,
}

var extensionMediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".webp": "image/webp",
	".txt":  "text/plain",
	".pdf":  "application/pdf",
	".docx": docxMediaType,

	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".heic": "image/heic",
	".doc":  "application/msword",
	".rtf":  "application/rtf",
	".odt":  "application/vnd.oasis.opendocument.text",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".htm":  "text/html",
	".html": "text/html",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".mp3":  "audio/mpeg",
	".wav":  "audio/x-wav",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// DetectMediaType resolves the media type from the filename extension and,
// when the extension is unknown, by sniffing the content. It reports false
// when neither yields anything more specific than application/octet-stream.
func DetectMediaType(filename string, data []byte) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if mt, ok := extensionMediaTypes[ext]; ok {
		return mt, true
	}
	if len(data) == 0 {
		return "", false
	}

	mt, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	mt = strings.TrimSpace(mt)
	if mt == "" || mt == octetStreamMediaType {
		return "", false
	}
	return mt, true
}

// IsSupportedMediaType reports whether uploads of this type are forwarded.
func IsSupportedMediaType(mediaType string) bool {
	return supportedMediaTypes[mediaType]
}
