package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "coilform-form"
	ClassHeader   ChromeClass = "coilform-header"
	ClassFieldset ChromeClass = "coilform-fieldset"
	ClassField    ChromeClass = "coilform-field"
	ClassActions  ChromeClass = "coilform-actions"
	ClassErrors   ChromeClass = "coilform-errors"
	ClassNotice   ChromeClass = "coilform-notice"
	ClassResults  ChromeClass = "coilform-results"
	ClassFallback ChromeClass = "coilform-fallback"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":     string(ClassForm),
		"header":   string(ClassHeader),
		"fieldset": string(ClassFieldset),
		"field":    string(ClassField),
		"actions":  string(ClassActions),
		"errors":   string(ClassErrors),
		"notice":   string(ClassNotice),
		"results":  string(ClassResults),
		"fallback": string(ClassFallback),
	}
}
