package textsource

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
)

func TestHTML(t *testing.T) {
	src := `<html><head><title>Judul</title><style>p{color:red}</style></head>
<body><p>Saya <b>makan</b> nasi.</p><script>var x = "rumahku";</script><p>Minum</p></body></html>`

	got, err := HTML(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "rumahku") || strings.Contains(got, "color") {
		t.Errorf("script/style text leaked: %q", got)
	}
	for _, want := range []string{"Judul", "Saya makan nasi.", "Minum"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "nasi.Minum") {
		t.Errorf("paragraphs should be separated: %q", got)
	}
}

func TestDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.docx")
	writeDocx(t, path, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Saya makan</w:t></w:r><w:r><w:t xml:space="preserve"> nasi</w:t></w:r></w:p>
<w:p><w:r><w:t>Rumahku</w:t></w:r></w:p>
</w:body></w:document>`)

	got, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Saya makan nasi\nRumahku"; got != want {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	os.WriteFile(path, []byte("berlari cepat"), 0o644)

	got, err := Extract(path)
	if err != nil || got != "berlari cepat" {
		t.Errorf("Extract = %q, %v", got, err)
	}
}

func TestExtractUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	os.WriteFile(path, []byte("%PDF"), 0o644)

	if _, err := Extract(path); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func writeDocx(t *testing.T, path, document string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(document)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}
