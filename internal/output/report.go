package output

import (
	"os"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes results in the named format to a timestamped file in
// dir and returns the file name. "all" writes every registered format.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "json-pretty", "csv", "schedule-csv"} {
			f, err := LookupFormatter(name)
			if err != nil {
				return files, err
			}
			file, err := WriteFormatted(f, results, dir, FileExtension(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	file, err := WriteFormatted(f, results, dir, FileExtension(format))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := MarshalConfiguration(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// MarshalConfiguration renders a configuration as YAML.
func MarshalConfiguration(config *domain.Configuration) ([]byte, error) {
	return yaml.Marshal(config)
}
