package driverkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dimchansky/utfbom"
	"github.com/tebeka/selenium"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const MetadataFileExtension = ".meta"

// SnapshotMetadata is the sidecar record written next to each capture.
type SnapshotMetadata struct {
	URL      string    `json:"url"`
	Title    string    `json:"title,omitempty"`
	Captured time.Time `json:"captured"`
}

// Recorder writes numbered page-source captures into a directory, one pair
// of files per capture: N.html and N.html.meta.
type Recorder struct {
	Dir   string
	Log   Logger
	count int
}

func (rec *Recorder) logger() Logger {
	if rec.Log == nil {
		return getDefaultLogger()
	}
	return rec.Log
}

// Save captures the driver's current page source and returns the capture
// filename.
func (rec *Recorder) Save(d selenium.WebDriver) (string, error) {
	source, err := d.PageSource()
	if err != nil {
		return "", err
	}
	currentUrl, err := d.CurrentURL()
	if err != nil {
		return "", err
	}
	title, err := d.Title()
	if err != nil {
		title = ""
	}

	if err := os.MkdirAll(rec.Dir, os.FileMode(0744)); err != nil {
		return "", err
	}

	rec.count++
	filename := path.Join(rec.Dir, fmt.Sprintf("%v.html", rec.count))
	if err := os.WriteFile(filename, []byte(source), os.FileMode(0644)); err != nil {
		return "", err
	}
	rec.logger().Printf("**** SAVE to %v (%v bytes)\n", filename, len(source))

	metadata := SnapshotMetadata{
		URL:      currentUrl,
		Title:    title,
		Captured: time.Now(),
	}
	if err := saveSnapshotMetadata(filename, metadata); err != nil {
		return "", err
	}
	return filename, nil
}

func saveSnapshotMetadata(filename string, metadata SnapshotMetadata) error {
	metadataFilename := filename + MetadataFileExtension
	metadataBytes, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %v", err)
	}
	err = os.WriteFile(metadataFilename, metadataBytes, os.FileMode(0644))
	if err != nil {
		return fmt.Errorf("failed to write metadata file %s: %v", metadataFilename, err)
	}
	return nil
}

func loadSnapshotMetadata(filename string) (SnapshotMetadata, error) {
	var metadata SnapshotMetadata
	metadataFilename := filename + MetadataFileExtension
	metadataBytes, err := os.ReadFile(metadataFilename)
	if err != nil {
		return metadata, fmt.Errorf("failed to read metadata file %s: %v", metadataFilename, err)
	}
	err = json.Unmarshal(metadataBytes, &metadata)
	if err != nil {
		return metadata, fmt.Errorf("failed to parse metadata file %s: %v", metadataFilename, err)
	}
	return metadata, nil
}

// LoadSnapshot reads a capture back as a Page for offline parsing. A byte
// order mark is skipped and a legacy charset declared in the document head
// is converted to UTF-8. The base URL comes from the .meta sidecar when one
// is present.
func LoadSnapshot(filename string, log Logger) (*Page, error) {
	if log == nil {
		log = getDefaultLogger()
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(raw)))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if charset, ok := charsetFromHead(doc); ok {
		converted, changed, err := convertCharset(body, charset)
		if err != nil {
			return nil, err
		}
		if changed {
			log.Printf("converting from %v...\n", charset)
			doc, err = goquery.NewDocumentFromReader(bytes.NewReader(converted))
			if err != nil {
				return nil, err
			}
		}
	}

	baseUrl := &url.URL{}
	if metadata, err := loadSnapshotMetadata(filename); err == nil {
		if u, err := url.Parse(metadata.URL); err == nil {
			baseUrl = u
		}
	}
	doc.Url = baseUrl

	return &Page{doc, baseUrl, log}, nil
}

// charsetFromHead finds the charset declared by head meta tags.
func charsetFromHead(doc *goquery.Document) (string, bool) {
	if charset, ok := doc.Find("head meta[charset]").Attr("charset"); ok {
		return strings.ToLower(strings.TrimSpace(charset)), true
	}
	if content, ok := doc.Find("head meta[http-equiv='Content-Type']").Attr("content"); ok {
		m := regexp.MustCompile(`\bcharset=([\w-]+)`).FindStringSubmatch(strings.ToLower(content))
		if len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}

// convertCharset decodes body to UTF-8. Unknown charset names are left
// alone; goquery already handled the bytes as far as it could.
func convertCharset(body []byte, charset string) ([]byte, bool, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return body, false, nil
	}
	if name, err := htmlindex.Name(enc); err == nil && name == "utf-8" {
		return body, false, nil
	}
	converted, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, false, err
	}
	return converted, true, nil
}
