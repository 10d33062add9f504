package driverkit

import (
	"fmt"
	"time"
)

// InvalidSelectorTypeError reports a selector-type name that maps to no
// WebDriver locator strategy.
type InvalidSelectorTypeError struct {
	Type string
}

func (err InvalidSelectorTypeError) Error() string {
	return fmt.Sprintf("invalid selector type %q", err.Type)
}

// ElementIndexError reports an index beyond the number of matched elements.
type ElementIndexError struct {
	Index int
	Count int
}

func (err ElementIndexError) Error() string {
	return fmt.Sprintf("element index %v out of range: %v elements matched", err.Index, err.Count)
}

// ElementWaitError reports an element that did not become interactable
// within the wait timeout.
type ElementWaitError struct {
	By      string
	Value   string
	Timeout time.Duration
	Err     error
}

func (err ElementWaitError) Error() string {
	return fmt.Sprintf("%v=%q: not interactable after %v: %v", err.By, err.Value, err.Timeout, err.Err)
}

func (err ElementWaitError) Unwrap() error {
	return err.Err
}
