package export

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// SymbolEncoder renders machine-readable symbols as PNG images.
type SymbolEncoder interface {
	QR(content string) ([]byte, error)
	Barcode(content string) ([]byte, error)
}

// Raster sizes of generated symbols in pixels. The PDF scales them to the
// label box.
const (
	qrPixels        = 256
	barcodeModulePx = 3
	barcodeHeightPx = 80
)

// DefaultSymbols encodes QR codes with medium error correction and linear
// barcodes as CODE128.
type DefaultSymbols struct{}

func (DefaultSymbols) QR(content string) ([]byte, error) {
	data, err := qrcode.Encode(content, qrcode.Medium, qrPixels)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return data, nil
}

func (DefaultSymbols) Barcode(content string) ([]byte, error) {
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode CODE128 %q: %w", content, err)
	}
	width := bc.Bounds().Dx() * barcodeModulePx
	scaled, err := barcode.Scale(bc, width, barcodeHeightPx)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode barcode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
