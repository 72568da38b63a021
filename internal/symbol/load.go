/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package symbol

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a symbol geometry document from r. Only YAML syntax and
// type errors are reported; the geometry itself is trusted as correct,
// the same way renderers trust an in-process upstream engine.
func Load(r io.Reader) (*Symbol, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Symbol
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode symbol geometry: %w", err)
	}
	return &s, nil
}

// LoadFile reads a symbol geometry document from path.
func LoadFile(path string) (*Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol geometry: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
