package writer

// MemWriter keeps the last committed document in memory.
type MemWriter struct {
	Buf     []byte
	Commits int
}

// Commit replaces Buf with a copy of b.
func (w *MemWriter) Commit(b []byte) error {
	w.Buf = append(w.Buf[:0], b...)
	w.Commits++
	return nil
}
