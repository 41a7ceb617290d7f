package exitcode

const (
	Success        = 0
	UsageError     = 1
	InputError     = 2
	OutputError    = 3
	MappingAborted = 4
	PartialSuccess = 5
)
