// elCheck: input sanity checks for genome-annotation pipelines.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://www.gnu.org/licenses/>.

package sanity

import (
	"os"
	"os/exec"
	"strings"
)

// Environment answers questions about the provisioning of the machine
// the pipeline runs on. Installing missing pieces is not its concern.
type Environment interface {
	// ToolAvailable returns true if the named executable can be run.
	ToolAvailable(name string) bool
	// FileExists returns true if path names a regular file.
	FileExists(path string) bool
}

// System is the Environment of the running process.
type System struct{}

// ToolAvailable looks up name in the directories of $PATH.
func (System) ToolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// FileExists stats path.
func (System) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CheckTools checks that all named executables are available.
func CheckTools(env Environment, tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if !env.ToolAvailable(tool) {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return newError(CompletenessError, "", 0, nil,
			"cannot find %v required executables, please make sure they are in a directory listed in your $PATH: %v",
			len(missing), strings.Join(missing, ", "))
	}
	return nil
}

// CheckFiles checks that all given files exist.
func CheckFiles(env Environment, files ...string) error {
	for _, file := range files {
		if !env.FileExists(file) {
			return newError(CompletenessError, file, 0, nil, "file %v not found", file)
		}
	}
	return nil
}
