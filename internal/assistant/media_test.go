package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		filename  string
		data      []byte
		wantType  string
		wantFound bool
	}{
		{"photo.png", nil, "image/png", true},
		{"photo.JPG", nil, "image/jpeg", true},
		{"photo.jpeg", nil, "image/jpeg", true},
		{"scan.webp", nil, "image/webp", true},
		{"notes.txt", nil, "text/plain", true},
		{"lab.pdf", nil, "application/pdf", true},
		{"rx.docx", nil, docxMediaType, true},
		{"old.doc", nil, "application/msword", true},
		{"README", []byte("plain words in a file"), "text/plain", true},
		{"scan", []byte("%PDF-1.4\n%âãÏÓ\n"), "application/pdf", true},
		{"report.xyz", []byte{0x00, 0x01, 0x02, 0x03, 0xfe, 0xff}, "", false},
		{"report.xyz", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := DetectMediaType(tt.filename, tt.data)
			assert.Equal(t, tt.wantFound, ok)
			assert.Equal(t, tt.wantType, got)
		})
	}
}

func TestIsSupportedMediaType(t *testing.T) {
	for _, mt := range []string{"image/png", "image/jpeg", "image/webp", "text/plain", "application/pdf", docxMediaType} {
		assert.True(t, IsSupportedMediaType(mt), mt)
	}
	for _, mt := range []string{"image/gif", "application/msword", "text/csv", ""} {
		assert.False(t, IsSupportedMediaType(mt), mt)
	}
}
