package config

const (
	// MaxDocumentTitleLength is the maximum length for document titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxDocumentTitleLength = 255

	// MaxDepartmentNameLength is the maximum length for department names.
	// Department names become folder path segments, so they stay short.
	MaxDepartmentNameLength = 120

	// MaxFolderPathLength is the maximum length for canonical folder
	// paths: department, optional sub-unit, and category label joined by
	// slashes. The hierarchy is at most three segments deep.
	MaxFolderPathLength = 500
)
