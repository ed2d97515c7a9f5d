// Package share generates QR codes linking to member profiles.
package share

import (
	"bytes"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// ProfileQRPNG returns PNG bytes of a QR code pointing at a member profile
// URL.
func ProfileQRPNG(profileURL string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(profileURL, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}
