package pipeline

import "errors"

var errNoCorpusProvider = errors.New("no corpus provider configured")
