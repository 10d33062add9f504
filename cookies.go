package driverkit

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	cookiejar "github.com/orirawlings/persistent-cookiejar"
	"github.com/tebeka/selenium"
)

// SaveCookies writes the driver's current cookies into a persistent jar
// file, merging with whatever the file already holds.
func SaveCookies(d selenium.WebDriver, filename string) error {
	jar, err := cookiejar.New(&cookiejar.Options{
		Filename:              filename,
		PersistSessionCookies: true,
	})
	if err != nil {
		return err
	}

	cookies, err := d.GetCookies()
	if err != nil {
		return err
	}
	current, err := currentURL(d)
	if err != nil {
		return err
	}

	converted := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		converted = append(converted, toHTTPCookie(c))
	}
	jar.SetCookies(current, converted)

	return jar.Save()
}

// LoadCookies installs cookies previously saved for the driver's current
// host. Navigate to the target origin first; WebDriver only accepts cookies
// for the document's domain.
func LoadCookies(d selenium.WebDriver, filename string) error {
	jar, err := cookiejar.New(&cookiejar.Options{
		Filename:              filename,
		PersistSessionCookies: true,
	})
	if err != nil {
		return err
	}

	current, err := currentURL(d)
	if err != nil {
		return err
	}

	for _, c := range jar.AllCookies() {
		if !cookieMatchesHost(c.Domain, current.Hostname()) {
			continue
		}
		cookie := &selenium.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Path:   c.Path,
			Domain: c.Domain,
			Secure: c.Secure,
		}
		if !c.Expires.IsZero() {
			cookie.Expiry = uint(c.Expires.Unix())
		}
		if err := d.AddCookie(cookie); err != nil {
			return err
		}
	}
	return nil
}

func currentURL(d selenium.WebDriver) (*url.URL, error) {
	current, err := d.CurrentURL()
	if err != nil {
		return nil, err
	}
	return url.Parse(current)
}

func toHTTPCookie(c selenium.Cookie) *http.Cookie {
	cookie := &http.Cookie{
		Name:   c.Name,
		Value:  c.Value,
		Path:   c.Path,
		Domain: c.Domain,
		Secure: c.Secure,
	}
	if c.Expiry != 0 {
		cookie.Expires = time.Unix(int64(c.Expiry), 0)
	}
	return cookie
}

func cookieMatchesHost(domain, host string) bool {
	domain = strings.TrimPrefix(domain, ".")
	return domain == host || strings.HasSuffix(host, "."+domain)
}
