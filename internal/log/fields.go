package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldChild     = "child"
	FieldKey       = "key"
	FieldRecordID  = "record_id"
	FieldDate      = "date"
	FieldLabel     = "label"
	FieldCount     = "count"
	FieldBackend   = "backend"
	FieldBytes     = "bytes"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentRecords = "records"
	ComponentRoster  = "roster"
	ComponentLedger  = "ledger"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpSave      = "save"
	OpPurge     = "purge"
	OpAdd       = "add"
	OpDelete    = "delete"
	OpDeleteDay = "delete_day"
	OpDecode    = "decode"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithChild adds the child name and its storage key
func (f LogFields) WithChild(name, key string) LogFields {
	f[FieldChild] = name
	f[FieldKey] = key
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
