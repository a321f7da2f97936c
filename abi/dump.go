package abi

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Dump writes m as YAML for people to read.
func Dump(w io.Writer, m *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("abi: dump: %w", err)
	}
	return enc.Close()
}
