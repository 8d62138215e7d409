package exitcode

const (
	Success = 0
	Failure = 1
)
