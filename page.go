package driverkit

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tebeka/selenium"
)

// Page is a parsed snapshot of a browser document.
type Page struct {
	*goquery.Document
	BaseUrl *url.URL
	Logger  Logger
}

// Document parses the driver's current page source into a Page bound to the
// driver's current URL. The page is a copy; later driver activity doesn't
// change it.
func Document(d selenium.WebDriver, log Logger) (*Page, error) {
	if log == nil {
		log = getDefaultLogger()
	}

	source, err := d.PageSource()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, err
	}

	current, err := d.CurrentURL()
	if err != nil {
		return nil, err
	}
	baseUrl, err := url.Parse(current)
	if err != nil {
		return nil, err
	}
	doc.Url = baseUrl

	base := doc.Find("head base")
	if base.Length() == 1 {
		if href, exists := base.Attr("href"); exists {
			if resolved, err := baseUrl.Parse(href); err == nil {
				baseUrl = resolved
			}
		}
	}

	log.Printf("* %v\n", doc.Find("title").Text())

	return &Page{doc, baseUrl, log}, nil
}

// ResolveLink resolves a relative URL against the page's base URL.
func (page *Page) ResolveLink(relativeURL string) (string, error) {
	reqUrl, err := page.BaseUrl.Parse(relativeURL)
	if err != nil {
		return "", err
	}
	return reqUrl.String(), nil
}
