// Package driverkit wraps the Selenium WebDriver protocol with small helpers
// for scripting UI interactions: map a selector-type name to a locator
// strategy, wait until the matched element is interactable, and act on it.
//
// Every helper takes a selenium.WebDriver owned by the caller and never
// closes it. The action wrappers (Click, Submit, SendKeys) report success as
// a bool and log the failure reason; the locators (Element, Elements) return
// the found element(s) and an error.
package driverkit

import (
	"sync"
	"time"
)

const (
	// DefaultTimeout is the default explicit-wait timeout for element lookup
	DefaultTimeout = 30 * time.Second
	// DefaultPollInterval is the polling interval of the explicit wait
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultDriverPort is the port chromedriver listens on when ChromeOptions.Port is zero
	DefaultDriverPort = 9515
)

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   Logger = ConsoleLogger{}
)

// SetDefaultLogger replaces the logger used whenever an options struct
// carries no Logger of its own.
func SetDefaultLogger(log Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = log
}

func getDefaultLogger() Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}
