package replay

import "faststack/internal/control"

// Player replays a recorded delta stream, reconstructing the held
// keystate for any tick number as the recording's deltas are consumed in
// order. Ticks must be queried in non-decreasing order.
type Player struct {
	overview Overview
	deltas   []Delta
	idx      int
	current  control.Key
}

// NewPlayer constructs a Player over a recorded Overview/Delta stream.
func NewPlayer(overview Overview, deltas []Delta) *Player {
	return &Player{overview: overview, deltas: deltas}
}

// Overview returns the replay's recorded session summary.
func (p *Player) Overview() Overview { return p.overview }

// KeysAt advances through the delta stream up to tick and returns the
// keystate that was in effect at that tick.
func (p *Player) KeysAt(tick uint64) control.Key {
	for p.idx < len(p.deltas) && p.deltas[p.idx].Tick <= tick {
		p.current = p.deltas[p.idx].Keys
		p.idx++
	}
	return p.current
}

// Done reports whether every recorded delta has been consumed.
func (p *Player) Done() bool {
	return p.idx >= len(p.deltas)
}

// Reset rewinds the player to the start of the delta stream.
func (p *Player) Reset() {
	p.idx = 0
	p.current = 0
}
