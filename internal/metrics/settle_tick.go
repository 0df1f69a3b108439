package metrics

// SettleTick records the first tick at which the session reported reached.
// Value is -1 while unsettled.
type SettleTick struct {
	name    string
	settled int
}

func NewSettleTick() *SettleTick {
	return &SettleTick{name: "settle_tick", settled: -1}
}

func (m *SettleTick) Name() string {
	return m.name
}

func (m *SettleTick) Observe(s Sample) {
	if m.settled == -1 && s.Reached {
		m.settled = s.Tick
	}
}

func (m *SettleTick) Value() float64 {
	return float64(m.settled)
}

func (m *SettleTick) Reset() {
	m.settled = -1
}
