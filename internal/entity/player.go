package entity

// GridSize is the side length of a player's grid.
const GridSize = 3

// Grid is a player's 3x3 arrangement of distinct numbers from 1 to 9.
type Grid [GridSize][GridSize]int

// Contains reports whether number appears anywhere in the grid.
func (that Grid) Contains(number int) bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == number {
				return true
			}
		}
	}

	return false
}

type Player struct {
	Username   string `json:"username"`
	Grid       Grid   `json:"grid"`
	CutNumbers []int  `json:"cutNumbers"`
	Won        bool   `json:"won"`
}

// HasCut reports whether number has already been cut for this player.
func (that *Player) HasCut(number int) bool {
	for _, cut := range that.CutNumbers {
		if cut == number {
			return true
		}
	}

	return false
}

func (that *Player) Clone() *Player {
	clone := *that
	clone.CutNumbers = append([]int(nil), that.CutNumbers...)

	return &clone
}
