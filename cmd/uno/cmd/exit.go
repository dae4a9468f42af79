package cmd

// ruleExit is returned by evaluating commands to signal a specific exit
// code. 0=all files pass, 1=violations or invalid evidence, 2=error.
type ruleExit struct{ code int }

func (e ruleExit) Error() string {
	switch e.code {
	case 0:
		return ""
	case 1:
		return "rule violations"
	default:
		return "evaluation error"
	}
}

// ExitCode extracts the exit code from a ruleExit error.
// Returns -1 if the error is not a ruleExit.
func ExitCode(err error) int {
	if re, ok := err.(ruleExit); ok {
		return re.code
	}
	return -1
}
