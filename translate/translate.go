// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate localises diagnostic and error text.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("arithcc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage overrides the detected locale with a BCP 47 tag.
// An empty tag keeps the current printer.
func SetLanguage(tag string) (err error) {
	if len(tag) == 0 {
		return
	}

	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printer = message.NewPrinter(lang)

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// lazyError is an error whose text is looked up each time it is read,
// so it follows later calls to SetLanguage.
type lazyError struct {
	key string
}

func (err *lazyError) Error() string {
	return From(err.key)
}

// Error returns a sentinel error for an en-US message key.
func Error(key string) error {
	return &lazyError{key: key}
}
