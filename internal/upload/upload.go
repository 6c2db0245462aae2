// Package upload gates file attachments by MIME kind and size. This is a
// type/size check only; no content scanning happens despite what the demo
// UI claims.
package upload

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"financas/internal/core"
)

// MaxSize is the attachment size ceiling: 5 MiB.
const MaxSize = 5 << 20

// acceptedMIME maps the allowed declared types.
var acceptedMIME = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Rejected is the per-field error the form renders inline. It never reaches
// the store; a transaction is only appended once its attachment passed.
type Rejected struct {
	Field  string
	Reason string
}

func (r *Rejected) Error() string {
	return fmt.Sprintf("upload rejected (%s): %s", r.Field, r.Reason)
}

// Gate validates one uploaded file and produces the attachment reference.
// declaredMIME comes from the multipart header; the first bytes are sniffed
// and must agree for the binary kinds we accept.
func Gate(field, name, declaredMIME string, size int64, r io.Reader) (*core.Attachment, error) {
	mime := normalizeMIME(declaredMIME)
	if !acceptedMIME[mime] {
		return nil, &Rejected{Field: field, Reason: "tipo de arquivo não permitido: " + declaredMIME}
	}
	if size > MaxSize {
		return nil, &Rejected{Field: field, Reason: fmt.Sprintf("arquivo excede o limite de 5 MiB (%d bytes)", size)}
	}
	if size <= 0 {
		return nil, &Rejected{Field: field, Reason: "arquivo vazio"}
	}

	if r != nil {
		head := make([]byte, 512)
		n, err := io.ReadFull(r, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, &Rejected{Field: field, Reason: "falha ao ler o arquivo"}
		}
		sniffed := normalizeMIME(http.DetectContentType(head[:n]))
		if !mimeAgrees(mime, sniffed) {
			return nil, &Rejected{Field: field, Reason: "conteúdo não corresponde ao tipo declarado"}
		}
	}

	return &core.Attachment{Name: name, Size: size, MIME: mime}, nil
}

func normalizeMIME(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if i := strings.Index(s, ";"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// mimeAgrees accepts the sniffed type when it matches the declared one.
// DetectContentType cannot identify webp-in-riff on every input and reports
// application/octet-stream for short PDFs, so those fall back to the declared
// kind rather than rejecting valid files.
func mimeAgrees(declared, sniffed string) bool {
	if declared == sniffed {
		return true
	}
	switch sniffed {
	case "application/octet-stream", "text/plain":
		return true
	}
	// PDFs sniff as application/pdf only with the %PDF magic at offset 0;
	// some generators prepend a BOM.
	if declared == "application/pdf" && strings.HasPrefix(sniffed, "application/") {
		return true
	}
	return false
}
