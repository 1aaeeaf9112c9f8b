// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"bytes"
	"encoding/json"
	"os"

	"sigs.k8s.io/yaml"
)

// LoadInstance reads a YAML or JSON instance file.
func LoadInstance(file string) (*Instance, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ParseInstance(data)
}

// ParseInstance decodes a YAML or JSON instance, unknown fields are errors.
func ParseInstance(data []byte) (*Instance, error) {
	var inst Instance
	if err := yaml.UnmarshalStrict(data, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

func WriteInstance(file string, inst *Instance) error {
	data, err := yaml.Marshal(inst)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func LoadReport(file string) (*Report, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var report Report

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

func WriteReport(file string, report *Report) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(report); err != nil {
		return err
	}

	return os.WriteFile(file, buf.Bytes(), 0644)
}
