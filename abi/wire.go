package abi

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode so equal manifests encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("abi: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a Manifest to CBOR bytes.
func Marshal(m *Manifest) ([]byte, error) {
	data, err := cborEncMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("abi: marshal manifest: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes a Manifest from CBOR bytes.
func Unmarshal(data []byte) (*Manifest, error) {
	var m Manifest
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("abi: unmarshal manifest: %w", err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("abi: unsupported manifest version %d", m.Version)
	}
	return &m, nil
}

// Fingerprint is the SHA-256 of the canonical encoding.
func Fingerprint(m *Manifest) ([32]byte, error) {
	data, err := Marshal(m)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// WriteFile writes m to path, creating parent directories.
func WriteFile(path string, m *Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("abi: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("abi: %w", err)
	}
	return nil
}

// ReadFile reads a manifest written by WriteFile.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("abi: %w", err)
	}
	return Unmarshal(data)
}
