package driverkit

import "github.com/tebeka/selenium"

// ByType maps a selector-type name to the WebDriver locator strategy it
// stands for. Valid names are "id", "name", "class", "tag", "link_text",
// "partial_link_text", "xpath" and "css_selector".
func ByType(selectorType string) (string, error) {
	switch selectorType {
	case "id":
		return selenium.ByID, nil
	case "name":
		return selenium.ByName, nil
	case "class":
		return selenium.ByClassName, nil
	case "tag":
		return selenium.ByTagName, nil
	case "link_text":
		return selenium.ByLinkText, nil
	case "partial_link_text":
		return selenium.ByPartialLinkText, nil
	case "xpath":
		return selenium.ByXPATH, nil
	case "css_selector":
		return selenium.ByCSSSelector, nil
	}
	return "", InvalidSelectorTypeError{selectorType}
}
