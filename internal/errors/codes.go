// Package errors provides structured error handling for grrep.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (directory enumeration)
//   - 3XX: Pattern errors (gitignore parsing)
//   - 4XX: Search errors (root validation, file reads)
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates directory and file I/O errors.
	CategoryIO Category = "IO"
	// CategoryPattern indicates gitignore pattern parsing errors.
	CategoryPattern Category = "PATTERN"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_101_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeDirRead = "ERR_201_DIR_READ"

	// Pattern errors (300-399)
	ErrCodePatternSyntax = "ERR_301_PATTERN_SYNTAX"

	// Search errors (400-499)
	ErrCodeInvalidRoot = "ERR_401_INVALID_ROOT"
	ErrCodeFileRead    = "ERR_402_FILE_READ"
)

// categoryFromCode derives the category from an error code prefix.
func categoryFromCode(code string) Category {
	if len(code) < 5 {
		return CategoryValidation
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryPattern
	default:
		return CategoryValidation
	}
}
