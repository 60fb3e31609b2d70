// Package stream provides the fixed-width binary reader and writer
// primitives used by searchkit's wire form.
//
// All multi-byte values are big-endian. The encoding has four shapes:
//
//	int64        8 bytes, two's complement
//	uint32       4 bytes
//	string       uint32 length prefix, then the raw bytes
//	list length  uint32 count, elements follow back to back
//
// Readers bound their allocations with Limits so a corrupt or hostile
// length prefix cannot make the process allocate gigabytes before the
// payload read fails. Exceeding a limit returns ErrStringTooLong or
// ErrListTooLong before any allocation happens.
//
//	r := stream.NewReader(conn)
//	n, err := r.ReadInt64()
//
//	w := stream.NewWriter(&buf)
//	err := w.WriteString("events")
//
// Reader and Writer do no internal buffering or locking; wrap the
// underlying io.Reader/io.Writer in bufio and serialize access yourself
// where that matters.
package stream
