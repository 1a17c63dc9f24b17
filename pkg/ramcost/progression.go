package ramcost

// Progression is the player state cost functions depend on.
type Progression interface {
	// BitNode returns the number of the BitNode the player is in.
	BitNode() int
	// SourceFileLevel returns the owned level of Source-File n, 0 if none.
	SourceFileLevel(n int) int
}

// Player is a plain Progression.
type Player struct {
	BitNodeN    int         `yaml:"bitnode"`
	SourceFiles map[int]int `yaml:"source_files"`
}

var _ Progression = (*Player)(nil)

func (p *Player) BitNode() int {
	return p.BitNodeN
}

func (p *Player) SourceFileLevel(n int) int {
	return p.SourceFiles[n]
}
