package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var filenameStripRe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceFiles = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SecureFilename reduces an uploaded file name to a safe ASCII name with no
// path components. It may return "" when nothing usable is left.
func SecureFilename(name string) string {
	decomposed := norm.NFKD.String(name)

	var ascii strings.Builder
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}

	cleaned := strings.NewReplacer("/", " ", `\`, " ").Replace(ascii.String())
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	cleaned = filenameStripRe.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, "._")

	if cleaned != "" {
		base := strings.ToUpper(strings.SplitN(cleaned, ".", 2)[0])
		if _, reserved := windowsDeviceFiles[base]; reserved {
			cleaned = "_" + cleaned
		}
	}

	return cleaned
}
