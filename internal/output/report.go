package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the outcome to a timestamped file in dir using a
// registered formatter. "all" writes the verbose console and detailed CSV
// reports. It returns the written file names.
func GenerateReport(outcome *domain.SalaryOutcome, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "detailed-csv"} {
			file, err := WriteFormatted(GetFormatterByName(name), outcome, dir, FileExtension(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	file, err := WriteFormatted(f, outcome, dir, FileExtension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
