package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"

	"photovault/internal/pv"
)

// AgeExporter encrypts copies for a set of age recipients before handing
// them to another exporter. Encrypted copies carry an ".age" suffix.
type AgeExporter struct {
	next       pv.Exporter
	recipients []age.Recipient
}

// NewAgeExporter parses recipients given as age public keys ("age1...").
func NewAgeExporter(next pv.Exporter, recipients []string) (*AgeExporter, error) {
	parsed, err := age.ParseRecipients(strings.NewReader(strings.Join(recipients, "\n")))
	if err != nil {
		return nil, fmt.Errorf("parsing age recipients: %w", err)
	}
	return &AgeExporter{next: next, recipients: parsed}, nil
}

// Export streams the encrypted form of r to the wrapped exporter. The
// ciphertext length is not known up front.
func (e *AgeExporter) Export(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(e.encrypt(r, pw))
	}()

	location, err := e.next.Export(ctx, name+".age", pr, -1)
	// Unblocks the encrypting goroutine if the destination stopped reading.
	pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return "", err
	}
	return location, nil
}

func (e *AgeExporter) encrypt(r io.Reader, w io.Writer) error {
	encWriter, err := age.Encrypt(w, e.recipients...)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}
