/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder returns a decoder converting charset to UTF-8. An empty charset
// means UTF-8. The UTF-8 decoder replaces invalid bytes with U+FFFD.
func Decoder(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(charset) {
	case "", "utf8", "utf-8":
		return unicode.UTF8.NewDecoder(), nil
	}
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("ianaindex.MIME.Encoding(%s): %v", charset, err)
	}
	if e == nil {
		return nil, fmt.Errorf("charset %s is not supported", charset)
	}
	return e.NewDecoder(), nil
}

// GetCode returns the lines around lineNumber (two on each side), each
// prefixed with its number; the reported line is marked with '>'.
func GetCode(path string, lineNumber int, charset string) (string, error) {
	if lineNumber <= 0 {
		return "", nil
	}
	decoder, err := Decoder(charset)
	if err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(transform.NewReader(file, decoder))
	lower := lineNumber - 2
	upper := lineNumber + 2
	lineCount := 0
	var b strings.Builder
	for scanner.Scan() {
		lineCount++
		if lineCount < lower {
			continue
		} else if lineCount > upper {
			break
		}
		text := strings.TrimRight(scanner.Text(), "\r")
		if lineCount == lineNumber {
			fmt.Fprintf(&b, "> %d| %s\n", lineCount, text)
		} else {
			fmt.Fprintf(&b, "  %d| %s\n", lineCount, text)
		}
	}
	if err = scanner.Err(); err != nil {
		glog.Warningf("reading %s: %v", path, err)
		return "", err
	}
	return b.String(), nil
}
