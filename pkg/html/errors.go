package html

// ParseError reports markup that could not be turned into a node tree.
type ParseError struct {
	Msg string
	Err error // underlying tokenizer error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "markup: " + e.Msg + ": " + e.Err.Error()
	}
	return "markup: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
