// Command validate checks connect4 client configuration files. Each YAML
// file named on the command line (default: every *.yaml and *.yml file in
// ./configs) is loaded the way the client loads it and checked for:
//   - YAML structure
//   - environment, mode and endpoint consistency
//   - a usable page URL and, when given, a join link carrying a game_id
//   - a board on which four in a row is possible
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/connect-four-client/config"
)

// lineLength is the number of pieces in a winning line.
const lineLength = 4

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single client configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	cfg, err := config.Load(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to load: %v", err))
		return result
	}

	if err := cfg.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if cfg.Columns < lineLength && cfg.Rows < lineLength {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Board %dx%d is too small for %d in a row", cfg.Columns, cfg.Rows, lineLength))
		return result
	}

	joinID, err := cfg.JoinGameID()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Environment: %s", cfg.Environment))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Server: %s", cfg.Endpoint()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", cfg.Columns, cfg.Rows))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Mode: %s", cfg.Mode))
	if joinID != "" {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Joins game: %s", joinID))
	} else {
		result.Errors = append(result.Errors, "✓ Starts a new game")
	}

	return result
}

// configFiles returns the files named in args, or the YAML files in ./configs.
func configFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join("configs", pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// main validates each configuration file, printing a concise report and
// exiting with non-zero status if any are invalid.
func main() {
	files, err := configFiles(os.Args[1:])
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No configuration files found")
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
