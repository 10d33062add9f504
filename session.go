package driverkit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// defaultChromeArgs hardens Chrome for unattended automation runs.
var defaultChromeArgs = []string{
	"--ignore-certificate-errors",
	"--ignore-ssl-errors",
	"--disable-notifications",
	"--no-sandbox",
	"--verbose",
	"--disable-gpu",
	"--disable-extensions",
	"--disable-software-rasterizer",
	"--start-maximized",
	"--disable-dev-shm-usage",
	"--disable-infobars",
}

// StealthProfileDir is the profile directory a stealth session uses when
// ChromeOptions.ProfileDir is empty.
const StealthProfileDir = "./uc"

// ChromeOptions configures a Chrome session.
type ChromeOptions struct {
	DriverPath string   // path to the chromedriver binary
	Port       int      // chromedriver port. zero means DefaultDriverPort
	Headless   bool     // run without a browser window
	Args       []string // extra Chrome switches, forwarded as-is
	ProfileDir string   // user data directory. empty means a fresh profile
	Log        Logger   // nil means the package default logger
}

func (opts ChromeOptions) logger() Logger {
	if opts.Log == nil {
		return getDefaultLogger()
	}
	return opts.Log
}

func (opts ChromeOptions) port() int {
	if opts.Port == 0 {
		return DefaultDriverPort
	}
	return opts.Port
}

// Chrome bundles the chromedriver process and the WebDriver session talking
// to it. Pass WebDriver() into the helpers; the helpers never close it.
type Chrome struct {
	service *selenium.Service
	driver  selenium.WebDriver
}

func (c *Chrome) WebDriver() selenium.WebDriver {
	return c.driver
}

// Stop quits the browser session and stops the chromedriver process.
func (c *Chrome) Stop() error {
	quitErr := c.driver.Quit()
	if err := c.service.Stop(); err != nil {
		return err
	}
	return quitErr
}

// NewChrome starts chromedriver and opens a Chrome session with the default
// hardening switches applied.
func NewChrome(opts ChromeOptions) (*Chrome, error) {
	caps, err := chromeCapabilities(opts, false)
	if err != nil {
		return nil, err
	}
	return newChrome(opts, caps)
}

// NewStealthChrome opens a session configured to reduce automation
// fingerprints: the enable-automation switch is excluded, Blink's
// AutomationControlled feature is turned off, and browser state persists in
// a profile directory across runs.
func NewStealthChrome(opts ChromeOptions) (*Chrome, error) {
	caps, err := chromeCapabilities(opts, true)
	if err != nil {
		return nil, err
	}
	return newChrome(opts, caps)
}

func newChrome(opts ChromeOptions, caps selenium.Capabilities) (*Chrome, error) {
	log := opts.logger()

	service, err := selenium.NewChromeDriverService(opts.DriverPath, opts.port())
	if err != nil {
		log.Printf("NewChrome: %v\n", err)
		return nil, fmt.Errorf("chromedriver service: %w", err)
	}

	driver, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", opts.port()))
	if err != nil {
		_ = service.Stop()
		log.Printf("NewChrome: %v\n", err)
		return nil, fmt.Errorf("webdriver session: %w", err)
	}

	return &Chrome{service: service, driver: driver}, nil
}

func chromeCapabilities(opts ChromeOptions, stealth bool) (selenium.Capabilities, error) {
	args := append([]string{}, defaultChromeArgs...)
	if opts.Headless {
		args = append(args, "--headless=new")
	}

	crm := chrome.Capabilities{}

	profileDir := opts.ProfileDir
	if stealth {
		args = append(args, "--disable-blink-features=AutomationControlled")
		crm.ExcludeSwitches = []string{"enable-automation"}
		if profileDir == "" {
			profileDir = StealthProfileDir
		}
	}
	if profileDir != "" {
		abs, err := filepath.Abs(profileDir)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(abs, 0777); err != nil {
			return nil, fmt.Errorf("couldn't create directory: %v", abs)
		}
		args = append(args, "--user-data-dir="+abs)
	}

	crm.Args = append(args, opts.Args...)

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(crm)
	return caps, nil
}
