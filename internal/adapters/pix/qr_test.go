package pix

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("00020126580014br.gov.bcb.pix0136payload", 256)
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("expected PNG output")
	}
}

func TestQRPNG_EmptyPayload(t *testing.T) {
	if _, err := QRPNG("", 256); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestQRPNG_DefaultSize(t *testing.T) {
	png, err := QRPNG("payload", 0)
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected non-empty PNG")
	}
}

func TestQRBase64(t *testing.T) {
	b64, err := QRBase64("payload", 64)
	if err != nil {
		t.Fatalf("QRBase64: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("output is not valid base64: %v", err)
	}
	if !bytes.HasPrefix(raw, pngHeader) {
		t.Fatal("expected base64-encoded PNG")
	}
}

func TestDataURL(t *testing.T) {
	url, err := DataURL("payload", 128)
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %s", url[:30])
	}
}
