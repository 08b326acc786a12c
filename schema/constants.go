package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for settings and caching.
	DatabaseBackend string

	// SourceKind represents where candidate files and their timestamps come from.
	SourceKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All file sources supported.
const (
	FSSource  SourceKind = "fs" // default
	GitSource SourceKind = "git"
)

// DateLayout is the calendar-day label format used for active dates.
const DateLayout = "2006-01-02"

// DefaultExtensions mirrors the markdown-only listing of a notes vault.
var DefaultExtensions = []string{".md"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSourceKinds lists all valid file sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	FSSource:  {},
	GitSource: {},
}
