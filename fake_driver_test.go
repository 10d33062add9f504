package driverkit

import (
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

// fakeDriver implements the parts of selenium.WebDriver the helpers touch.
// Everything else panics through the embedded nil interface.
type fakeDriver struct {
	selenium.WebDriver

	elements  map[string][]*fakeElement
	source    string
	url       string
	title     string
	cookies   []selenium.Cookie
	added     []*selenium.Cookie
	findCalls []string
}

func locatorKey(by, value string) string {
	return by + " " + value
}

func (d *fakeDriver) FindElement(by, value string) (selenium.WebElement, error) {
	d.findCalls = append(d.findCalls, locatorKey(by, value))
	elements := d.elements[locatorKey(by, value)]
	if len(elements) == 0 {
		return nil, &selenium.Error{Err: "no such element", Message: value}
	}
	return elements[0], nil
}

func (d *fakeDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	d.findCalls = append(d.findCalls, locatorKey(by, value))
	elements := d.elements[locatorKey(by, value)]
	result := make([]selenium.WebElement, 0, len(elements))
	for _, element := range elements {
		result = append(result, element)
	}
	return result, nil
}

func (d *fakeDriver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := condition(d)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout after %v", timeout)
		}
		time.Sleep(interval)
	}
}

func (d *fakeDriver) PageSource() (string, error) {
	return d.source, nil
}

func (d *fakeDriver) CurrentURL() (string, error) {
	return d.url, nil
}

func (d *fakeDriver) Title() (string, error) {
	return d.title, nil
}

func (d *fakeDriver) GetCookies() ([]selenium.Cookie, error) {
	return d.cookies, nil
}

func (d *fakeDriver) AddCookie(cookie *selenium.Cookie) error {
	d.added = append(d.added, cookie)
	return nil
}

// fakeElement counts the actions performed on it. visibleAfter delays
// IsDisplayed to exercise the polling wait.
type fakeElement struct {
	selenium.WebElement

	displayed    bool
	enabled      bool
	visibleAfter int
	clickErr     error
	submitErr    error
	sendKeysErr  error
	clicks       int
	submits      int
	keys         []string
	html         string
}

func interactableElement() *fakeElement {
	return &fakeElement{displayed: true, enabled: true}
}

func (e *fakeElement) IsDisplayed() (bool, error) {
	if e.visibleAfter > 0 {
		e.visibleAfter--
		return false, nil
	}
	return e.displayed, nil
}

func (e *fakeElement) IsEnabled() (bool, error) {
	return e.enabled, nil
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

func (e *fakeElement) Submit() error {
	if e.submitErr != nil {
		return e.submitErr
	}
	e.submits++
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	if e.sendKeysErr != nil {
		return e.sendKeysErr
	}
	e.keys = append(e.keys, keys)
	return nil
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	if name != "outerHTML" {
		return "", &selenium.Error{Err: "unknown attribute", Message: name}
	}
	return e.html, nil
}

// quickFind keeps lookup tests snappy; the defaults would poll for 30s on
// the failure cases.
func quickFind() FindOptions {
	return FindOptions{
		Timeout:  50 * time.Millisecond,
		Interval: time.Millisecond,
		Log:      DiscardLogger{},
	}
}
