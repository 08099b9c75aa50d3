package assistant

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	wordprocessingNS      = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	markupCompatibilityNS = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

var errNoDocumentPart = errors.New("assistant: docx has no word/document.xml")

// extractDocxText returns the non-blank paragraphs of a .docx body, one per line.
func extractDocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("assistant: open docx: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", errNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("assistant: open document part: %w", err)
	}
	defer rc.Close()

	return paragraphsFromXML(rc)
}

func paragraphsFromXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("assistant: parse document part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// Text boxes and alternate drawing content hold their own
			// paragraphs; they are not part of the body text.
			if t.Name.Space == markupCompatibilityNS && t.Name.Local == "AlternateContent" {
				if err := dec.Skip(); err != nil {
					return "", fmt.Errorf("assistant: parse document part: %w", err)
				}
				continue
			}
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "txbxContent":
				if err := dec.Skip(); err != nil {
					return "", fmt.Errorf("assistant: parse document part: %w", err)
				}
			case "p":
				current.Reset()
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := current.String(); strings.TrimSpace(text) != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
