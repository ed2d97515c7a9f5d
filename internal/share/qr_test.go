package share

import (
	"bytes"
	"image/png"
	"testing"
)

func TestProfileQRPNG(t *testing.T) {
	b, err := ProfileQRPNG("http://localhost:8080/members/42", 200)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("qr output not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("qr width = %d, want 200", img.Bounds().Dx())
	}
}
