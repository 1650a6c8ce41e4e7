package persistence

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Filename derives the file name for h. Only the name, description, tags and
// time are hashed; the cell payload never affects the name.
func Filename(h Header) string {
	d := xxhash.New()
	writeString(d, h.Name)
	writeString(d, h.Description)
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(h.Tags)))
	_, _ = d.Write(n[:])
	for _, tag := range h.Tags {
		writeString(d, tag)
	}
	var ts [12]byte
	binary.LittleEndian.PutUint64(ts[:8], h.Time.Secs)
	binary.LittleEndian.PutUint32(ts[8:], h.Time.Nanos)
	_, _ = d.Write(ts[:])
	return strconv.FormatUint(d.Sum64(), 16) + Extension
}

// writeString length-prefixes s so adjacent fields cannot run together.
func writeString(d *xxhash.Digest, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = d.Write(n[:])
	_, _ = d.WriteString(s)
}
