package adx

import "errors"

// ErrInvalidHeader covers every header-parse failure: bad signature, a short
// read of the fixed 0x2C-byte header, or a missing "(c)CRI" trailer. The
// format does not distinguish sub-causes to its callers.
var ErrInvalidHeader = errors.New("adx: invalid header")

// ErrSourceIO covers a byte-source read or seek failure encountered outside
// header parsing, notably during Seek. get_audio never returns this: a short
// read there is indistinguishable from end-of-stream and is treated as EOF.
var ErrSourceIO = errors.New("adx: source I/O error")
