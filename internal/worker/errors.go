package worker

import "errors"

// ErrInputMissing marks an input path that does not exist. In a multi-file
// run the file is skipped and the remaining inputs still run; the error only
// surfaces when nothing could be processed at all.
var ErrInputMissing = errors.New("input file not found")
