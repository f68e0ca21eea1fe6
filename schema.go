package scrapyard

// schema assigns each registered component type a stable bit position used to
// encode signatures as masks. Positions are handed out in registration order
// and never change for the lifetime of the storage.
type schema struct {
	rows map[Component]uint32
}

func newSchema() *schema {
	return &schema{rows: make(map[Component]uint32)}
}

func (s *schema) Register(c Component) {
	if _, ok := s.rows[c]; !ok {
		s.rows[c] = uint32(len(s.rows))
	}
}

func (s *schema) RowIndexFor(c Component) uint32 {
	s.Register(c)
	return s.rows[c]
}
