package ecs

// stubComponent records what the object does to it.
type stubComponent struct {
	kind     ComponentType
	phase    Phase
	received []Message
	payloads []any
	updates  int
	onRecv   func(Message)
}

func newStub(kind ComponentType) *stubComponent {
	return &stubComponent{kind: kind, phase: PhaseUpdate}
}

func (s *stubComponent) Type() ComponentType { return s.kind }
func (s *stubComponent) Phase() Phase        { return s.phase }

func (s *stubComponent) Update(float64, *GameObject) error {
	s.updates++
	return nil
}

func (s *stubComponent) Receive(msg Message, payload any) {
	s.received = append(s.received, msg)
	s.payloads = append(s.payloads, payload)
	if s.onRecv != nil {
		s.onRecv(msg)
	}
}
