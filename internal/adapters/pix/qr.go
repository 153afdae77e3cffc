// Package pix renders Pix copia-e-cola payloads as QR code images for
// display while an order awaits payment.
package pix

import (
	"encoding/base64"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrEmptyPayload is returned when there is no Pix payload to encode.
var ErrEmptyPayload = errors.New("empty pix payload")

// QRPNG encodes the Pix payload as a PNG image of size x size pixels.
func QRPNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pix qr code: %w", err)
	}
	return png, nil
}

// QRBase64 returns the QR code PNG as plain base64, the same shape the
// backend uses for its qr_code_base64 field.
func QRBase64(payload string, size int) (string, error) {
	png, err := QRPNG(payload, size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// DataURL returns the QR code as a data URL suitable for an <img> src.
func DataURL(payload string, size int) (string, error) {
	b64, err := QRBase64(payload, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + b64, nil
}
