package models

import "strings"

// MaxImageSize caps the bytes read per fetched image (10MB).
const MaxImageSize = 10 * 1024 * 1024

// DefaultImageMIME is used when a response does not declare an image/* type.
const DefaultImageMIME = "image/jpeg"

// FetchedImage is one successfully downloaded image.
type FetchedImage struct {
	URL      string
	MIMEType string
	Data     []byte
}

// Size returns the payload length in bytes.
func (f FetchedImage) Size() int {
	return len(f.Data)
}

// ImageMIME keeps contentType when it is image/*, else DefaultImageMIME.
// Parameters such as charset are dropped.
func ImageMIME(contentType string) string {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if strings.HasPrefix(mime, "image/") && len(mime) > len("image/") {
		return mime
	}
	return DefaultImageMIME
}
