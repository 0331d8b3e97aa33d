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

package stats

import (
	"encoding/json"
	"fmt"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"
	"naive.systems/cclint/severity"
)

type SeverityCount struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
	Unknown int `json:"unknown"`
}

func (c *SeverityCount) Accumulate(sev severity.Severity) {
	switch sev {
	case severity.Error:
		c.Error++
	case severity.Warning:
		c.Warning++
	case severity.Info:
		c.Info++
	case severity.Unknown:
		c.Unknown++
	default:
		glog.Warningf("undefined severity %d", int(sev))
		c.Unknown++
	}
}

func (c SeverityCount) Total() int {
	return c.Error + c.Warning + c.Info + c.Unknown
}

func (c SeverityCount) Bytes() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %v", err)
	}
	return b, nil
}

// CountLines returns the number of code lines (blank lines and comments
// excluded) across files.
func CountLines(files []string) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}
	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(files)
	if err != nil {
		glog.Errorf("gocloc fail: %v", err)
		return 0, err
	}
	sum := 0
	for _, file := range result.Files {
		sum += int(file.Code)
	}
	return sum, nil
}
