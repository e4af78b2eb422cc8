package ingest

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/tabula"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

const (
	fetchTimeout = 30 * time.Second
	maxFetchSize = 64 << 20 // 64 MB
)

// Loader reads documents from local paths or HTTP(S) URLs and splits them
// into pages. PDFs keep their physical page boundaries; everything else is
// a single logical page. Load never fails: missing or unreadable input
// yields an empty page sequence.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a Loader with a default HTTP client.
func NewLoader() *Loader {
	return &Loader{httpClient: &http.Client{Timeout: fetchTimeout}}
}

// Load reads the document at pathOrURL and returns its pages in order.
func (l *Loader) Load(ctx context.Context, pathOrURL string) []Page {
	if pathOrURL == "" {
		return nil
	}
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return l.loadRemote(ctx, pathOrURL)
	}
	return l.loadLocal(pathOrURL)
}

func (l *Loader) loadLocal(path string) []Page {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(path)
	case ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("ingest: reading %s: %v", path, err)
			return nil
		}
		return singlePage(markdownToText(data))
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("ingest: reading %s: %v", path, err)
			return nil
		}
		return singlePage(string(data))
	}
}

// loadPDF extracts text page by page so every chunk can carry its page
// number. A page that fails to extract is skipped, not fatal.
func loadPDF(path string) []Page {
	ex := tabula.Open(path)
	defer ex.Close()

	count, err := ex.PageCount()
	if err != nil {
		log.Printf("ingest: opening pdf %s: %v", path, err)
		return nil
	}

	var pages []Page
	for n := 1; n <= count; n++ {
		text, _, err := ex.Pages(n).Text()
		if err != nil {
			log.Printf("ingest: extracting page %d of %s: %v", n, path, err)
			continue
		}
		pages = append(pages, Page{Number: n, Text: text})
	}
	return pages
}

func (l *Loader) loadRemote(ctx context.Context, url string) []Page {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("ingest: building request for %s: %v", url, err)
		return nil
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Printf("ingest: fetching %s: %v", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ingest: fetching %s: status %d", url, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		log.Printf("ingest: reading %s: %v", url, err)
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "pdf") || strings.HasSuffix(strings.ToLower(url), ".pdf"):
		return pdfFromBytes(body)
	case strings.HasSuffix(strings.ToLower(url), ".md"):
		return singlePage(markdownToText(body))
	default:
		return singlePage(string(body))
	}
}

// pdfFromBytes spools the response body to a temp file; the PDF reader
// needs random access.
func pdfFromBytes(body []byte) []Page {
	tmp, err := os.CreateTemp("", "ragdoc-*.pdf")
	if err != nil {
		log.Printf("ingest: temp file for remote pdf: %v", err)
		return nil
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		log.Printf("ingest: writing remote pdf: %v", err)
		return nil
	}
	tmp.Close()

	return loadPDF(tmp.Name())
}

// markdownToText parses markdown and extracts the plain text, keeping block
// boundaries so the chunker's paragraph separator still applies.
func markdownToText(src []byte) string {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte('\n')
			}
		default:
			if n.Type() == ast.TypeBlock && sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return sb.String()
}

func singlePage(text string) []Page {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []Page{{Number: 1, Text: text}}
}
