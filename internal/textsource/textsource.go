// Package textsource extracts plain text from uploaded documents.
package textsource

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
)

// Extract returns the text of the file at path, chosen by extension:
// .txt, .html/.htm and .docx are supported.
func Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return HTML(f)
	case ".docx":
		return DOCX(path)
	}
	return "", fmt.Errorf("unsupported document %s: %w", filepath.Base(path), internalerr.ErrInvalidInput)
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"title": true, "section": true, "article": true, "blockquote": true,
}

// HTML returns the visible text of an HTML document. Script and style
// contents are dropped; block elements end with a newline.
func HTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String()), nil
}

// DOCX returns the paragraphs of a Word document, one per line.
func DOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return documentText(rc)
	}
	return "", fmt.Errorf("docx %s has no word/document.xml: %w", filepath.Base(path), internalerr.ErrInvalidInput)
}

func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		buf    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteByte('\t')
			case "br":
				buf.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				buf.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
