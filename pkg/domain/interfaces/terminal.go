package interfaces

// Prompter asks the operator a question and returns the raw answer
type Prompter interface {
	Ask(question string) (string, error)
}

// Progress receives download progress
type Progress interface {
	Start(name string, total int64)
	Add(n int)
	Finish()
}
