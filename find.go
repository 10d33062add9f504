package driverkit

import (
	"time"

	"github.com/tebeka/selenium"
)

// FindOptions controls element lookup.
type FindOptions struct {
	Timeout  time.Duration // explicit-wait timeout. zero means DefaultTimeout
	Interval time.Duration // polling interval of the wait. zero means DefaultPollInterval
	Index    int           // position among all matches. 0 takes the first
	Quiet    bool          // suppress failure logging
	Log      Logger        // nil means the package default logger
}

func (opts FindOptions) timeout() time.Duration {
	if opts.Timeout == 0 {
		return DefaultTimeout
	}
	return opts.Timeout
}

func (opts FindOptions) interval() time.Duration {
	if opts.Interval == 0 {
		return DefaultPollInterval
	}
	return opts.Interval
}

func (opts FindOptions) logger() Logger {
	if opts.Log == nil {
		return getDefaultLogger()
	}
	return opts.Log
}

func (opts FindOptions) logFailure(format string, a ...interface{}) {
	if opts.Quiet {
		return
	}
	opts.logger().Printf(format, a...)
}

// waitInteractable polls until the first match is displayed and enabled, the
// condition a click or key entry needs.
func waitInteractable(d selenium.WebDriver, by, value string, opts FindOptions) error {
	cond := func(wd selenium.WebDriver) (bool, error) {
		element, err := wd.FindElement(by, value)
		if err != nil {
			return false, nil
		}
		displayed, err := element.IsDisplayed()
		if err != nil || !displayed {
			return false, nil
		}
		enabled, err := element.IsEnabled()
		if err != nil || !enabled {
			return false, nil
		}
		return true, nil
	}
	if err := d.WaitWithTimeoutAndInterval(cond, opts.timeout(), opts.interval()); err != nil {
		return ElementWaitError{By: by, Value: value, Timeout: opts.timeout(), Err: err}
	}
	return nil
}

// Element waits until the element matched by the selector is interactable
// and returns it. A positive Index picks among all matches instead of taking
// the single first match; a negative Index is rejected.
func Element(d selenium.WebDriver, selectorType, value string, opts FindOptions) (selenium.WebElement, error) {
	by, err := ByType(selectorType)
	if err != nil {
		opts.logFailure("Element %v: %v\n", value, err)
		return nil, err
	}

	if err := waitInteractable(d, by, value, opts); err != nil {
		opts.logFailure("Element: %v\n", err)
		return nil, err
	}

	if opts.Index != 0 {
		elements, err := d.FindElements(by, value)
		if err != nil {
			opts.logFailure("Element %v=%q: %v\n", by, value, err)
			return nil, err
		}
		if opts.Index < 0 || opts.Index >= len(elements) {
			err := ElementIndexError{Index: opts.Index, Count: len(elements)}
			opts.logFailure("Element %v=%q: %v\n", by, value, err)
			return nil, err
		}
		return elements[opts.Index], nil
	}

	element, err := d.FindElement(by, value)
	if err != nil {
		opts.logFailure("Element %v=%q: %v\n", by, value, err)
		return nil, err
	}
	return element, nil
}

// Elements waits until the first match is interactable and returns all
// matches. Index is ignored here; use Element to pick one.
func Elements(d selenium.WebDriver, selectorType, value string, opts FindOptions) ([]selenium.WebElement, error) {
	by, err := ByType(selectorType)
	if err != nil {
		opts.logFailure("Elements %v: %v\n", value, err)
		return nil, err
	}

	if err := waitInteractable(d, by, value, opts); err != nil {
		opts.logFailure("Elements: %v\n", err)
		return nil, err
	}

	elements, err := d.FindElements(by, value)
	if err != nil {
		opts.logFailure("Elements %v=%q: %v\n", by, value, err)
		return nil, err
	}
	return elements, nil
}
