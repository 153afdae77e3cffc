package wizard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

// maxPhotoBytes is the upper bound for an embedded participant photo.
const maxPhotoBytes = 5 << 20

// AttachPhoto reads an image stream into a base64 data URL on participant i.
// The participant must be unlocked.
func (w *Wizard) AttachPhoto(ctx context.Context, i int, r io.Reader, contentType string) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if w.ParticipantLocked(i) {
		return ErrLocked
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	data, err := io.ReadAll(io.LimitReader(r, maxPhotoBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return fmt.Errorf("photo exceeds %d bytes", maxPhotoBytes)
	}
	w.people[i].PhotoURL = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	w.persistDraft(ctx)
	return nil
}
