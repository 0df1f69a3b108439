package metrics

// TargetError tracks the latest end-effector distance to target.
type TargetError struct {
	name string
	last float64
	seen bool
}

func NewTargetError() *TargetError {
	return &TargetError{name: "target_error"}
}

func (m *TargetError) Name() string {
	return m.name
}

func (m *TargetError) Observe(s Sample) {
	m.last = s.Err
	m.seen = true
}

func (m *TargetError) Value() float64 {
	if !m.seen {
		return 0
	}
	return m.last
}

func (m *TargetError) Reset() {
	m.last = 0
	m.seen = false
}
