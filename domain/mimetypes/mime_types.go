// Package mimetypes lists the media types accepted as message images.
package mimetypes

import "mime"

type MIME string

const (
	Unknown   MIME = "unknown"
	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageWEBP MIME = "image/webp"
)

// Images are rendered inline by clients. SVG is left out since it can carry scripts.
var Images = []MIME{ImagePNG, ImageJPEG, ImageGIF, ImageWEBP}

// Matches parses a detected content type, parameters included, and compares it to expected.
func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// ImageType returns the accepted image type detected is, if any.
func ImageType(detected string) (MIME, bool) {
	for _, candidate := range Images {
		if m, ok := Matches(detected, candidate); ok {
			return m, true
		}
	}
	return Unknown, false
}
