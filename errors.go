package slotwire

import "github.com/rawbytedev/slotwire/pkg/zrec"

// The four structural errors are recoverable: callers are expected to fall
// back (try the textual form, reject a corrupt payload) rather than treat
// them as fatal. Builder misuse — an offset or slot index outside the
// declared layout — is a programming error and panics instead.
var (
	ErrInvalidMagic       = zrec.ErrInvalidMagic
	ErrUnsupportedVersion = zrec.ErrUnsupportedVersion
	ErrBufferTooSmall     = zrec.ErrBufferTooSmall
	ErrSlotDecode         = zrec.ErrSlotDecode
)
