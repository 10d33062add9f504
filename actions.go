package driverkit

import "github.com/tebeka/selenium"

// Click waits for the element matched by the selector to become interactable
// and clicks it. It reports whether the click went through; the failure
// reason is logged, nothing is retried or re-raised.
func Click(d selenium.WebDriver, selectorType, value string, opts FindOptions) bool {
	element, err := Element(d, selectorType, value, opts)
	if err != nil {
		return false
	}
	if err := element.Click(); err != nil {
		opts.logFailure("Click %v: %q: %v\n", selectorType, value, err)
		return false
	}
	opts.logger().Printf("Click %v: %q\n", selectorType, value)
	return true
}

// Submit waits for the form element matched by the selector and submits it.
func Submit(d selenium.WebDriver, selectorType, value string, opts FindOptions) bool {
	element, err := Element(d, selectorType, value, opts)
	if err != nil {
		return false
	}
	if err := element.Submit(); err != nil {
		opts.logFailure("Submit %v: %q: %v\n", selectorType, value, err)
		return false
	}
	opts.logger().Printf("Submit %v: %q\n", selectorType, value)
	return true
}

// KeysOptions controls SendKeys.
type KeysOptions struct {
	FindOptions
	PressEnter bool // press the Enter key after the text
}

// SendKeys waits for the element matched by the selector and types text into
// it, optionally followed by the Enter key.
func SendKeys(d selenium.WebDriver, selectorType, value, text string, opts KeysOptions) bool {
	element, err := Element(d, selectorType, value, opts.FindOptions)
	if err != nil {
		return false
	}
	keys := text
	if opts.PressEnter {
		keys += selenium.EnterKey
	}
	if err := element.SendKeys(keys); err != nil {
		opts.logFailure("SendKeys %v: %q: %v\n", selectorType, value, err)
		return false
	}
	opts.logger().Printf("SendKeys %v: %q\n", selectorType, value)
	return true
}
