// Package lecturers loads the optional lecturer roster used to seed a run
// by name search instead of the institution listing.
package lecturers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/unikom-riset/bibliometrics/internal/domain"
)

var validate = validator.New()

// Load reads and validates a roster JSON file: an array of objects with
// fullname and nidn fields. Every record must carry both.
func Load(path string) ([]domain.Lecturer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates roster JSON.
func Parse(data []byte) ([]domain.Lecturer, error) {
	var roster []domain.Lecturer
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	for i, lecturer := range roster {
		if err := validate.Struct(lecturer); err != nil {
			return nil, fmt.Errorf("invalid roster record %d: %w", i, err)
		}
	}
	return roster, nil
}
