package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./ebookstore.db"

	// DefaultUploadsDir is the root directory for uploaded covers and PDFs
	DefaultUploadsDir = "./static/uploads"
)
