package ratio

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var defaultDefinitionsYAML []byte

// Unit is the unit of every ratio value
const Unit = "%"

// AccountRef names an account within one statement division
type AccountRef struct {
	Account  string   `yaml:"account"`
	Division Division `yaml:"division"`
}

// Definition describes one ratio: numerator / denominator × 100
type Definition struct {
	ID          string     `yaml:"id"`
	DisplayName string     `yaml:"display_name"`
	Numerator   AccountRef `yaml:"numerator"`
	Denominator AccountRef `yaml:"denominator"`
}

type definitionFile struct {
	Ratios []Definition `yaml:"ratios"`
}

// ValidationError 정의 검증 실패
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseDefinitions decodes a ratio definition document.
// KnownFields(true): 오타/미사용 필드 즉시 실패
func ParseDefinitions(data []byte) ([]Definition, error) {
	var file definitionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode ratio definitions: %w", err)
	}

	if err := validateDefinitions(file.Ratios); err != nil {
		return nil, err
	}
	return file.Ratios, nil
}

// DefaultDefinitions returns the five built-in ratios
func DefaultDefinitions() ([]Definition, error) {
	return ParseDefinitions(defaultDefinitionsYAML)
}

func validateDefinitions(defs []Definition) error {
	if len(defs) == 0 {
		return ValidationError{"ratios", "at least one ratio required"}
	}

	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		field := fmt.Sprintf("ratios[%d]", i)
		if d.ID == "" {
			return ValidationError{field + ".id", "required"}
		}
		if seen[d.ID] {
			return ValidationError{field + ".id", fmt.Sprintf("duplicate id %q", d.ID)}
		}
		seen[d.ID] = true

		if d.DisplayName == "" {
			return ValidationError{field + ".display_name", "required"}
		}
		if err := validateRef(field+".numerator", d.Numerator); err != nil {
			return err
		}
		if err := validateRef(field+".denominator", d.Denominator); err != nil {
			return err
		}
	}
	return nil
}

func validateRef(field string, ref AccountRef) error {
	if ref.Account == "" {
		return ValidationError{field + ".account", "required"}
	}
	if ref.Division != DivisionBS && ref.Division != DivisionIS {
		return ValidationError{field + ".division", fmt.Sprintf("must be BS or IS, got %q", ref.Division)}
	}
	return nil
}
