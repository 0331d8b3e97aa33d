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

package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

const DefaultConfigFile = ".cclint.yaml"

// File is the content of a .cclint.yaml. Unset fields leave the flag
// defaults in place.
type File struct {
	Extensions  []string          `yaml:"extensions"`
	ExcludeDirs []string          `yaml:"exclude_dirs"`
	ExpandDir   string            `yaml:"expand_dir"`
	Color       string            `yaml:"color"`
	Strict      *bool             `yaml:"strict"`
	CpplintBin  string            `yaml:"cpplint_bin"`
	CpplintArgs string            `yaml:"cpplint_args"`
	Palette     map[string]string `yaml:"palette"`
	ShowCode    *bool             `yaml:"show_code"`
	Charset     string            `yaml:"charset"`
	Lang        string            `yaml:"lang"`
}

func ParseFile(content []byte) (*File, error) {
	file := &File{}
	if err := yaml.UnmarshalStrict(content, file); err != nil {
		return nil, fmt.Errorf("yaml.UnmarshalStrict: %v", err)
	}
	return file, nil
}

// LoadFile reads the configuration at path. With an empty path it looks
// for .cclint.yaml in the working directory and returns an empty File
// when there is none.
func LoadFile(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("os.ReadFile(%s): %v", path, err)
	}
	glog.V(1).Info("using config ", path)
	file, err := ParseFile(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return file, nil
}
