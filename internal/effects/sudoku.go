package effects

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Size is the Sudoku board dimension.
const Size = 9

// CelebrationDuration is how long solved cells stay highlighted.
const CelebrationDuration = 1500 * time.Millisecond

// puzzle is the classic starting grid; 0 marks an empty cell.
var puzzle = [Size][Size]int{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

// Sequence is a set of cells filled in together during a celebration.
type Sequence struct {
	Cells  [][2]int
	Values []int
}

// sequences complete the first three rows of the puzzle in turn.
var sequences = []Sequence{
	{Cells: [][2]int{{0, 2}, {0, 5}, {0, 6}, {0, 7}, {0, 8}}, Values: []int{4, 6, 9, 2, 1}},
	{Cells: [][2]int{{1, 1}, {1, 2}, {1, 6}, {1, 7}, {1, 8}}, Values: []int{7, 2, 3, 8, 4}},
	{Cells: [][2]int{{2, 0}, {2, 3}, {2, 4}, {2, 6}, {2, 7}}, Values: []int{1, 3, 4, 5, 2}},
}

// LearningPattern shapes one learning cycle: how long guesses stay
// tentative and how confident they start out.
type LearningPattern struct {
	Name       string
	Duration   time.Duration
	Confidence float64
}

// LearningPatterns are picked at random for each cycle.
var LearningPatterns = []LearningPattern{
	{"exploration", 8000 * time.Millisecond, 0.2},
	{"convergence", 5000 * time.Millisecond, 0.8},
	{"uncertainty", 3000 * time.Millisecond, 0.1},
	{"breakthrough", 2000 * time.Millisecond, 0.95},
}

// Cell is one square of the board. Value 0 is empty.
type Cell struct {
	Value       int     `json:"v"`
	Confidence  float64 `json:"c"`
	Learning    bool    `json:"l,omitempty"`
	Celebrating bool    `json:"x,omitempty"`
}

// Board is the animated Sudoku for one viewer.
type Board struct {
	Cells [Size][Size]Cell
	// HighlightRow and HighlightCol are -1 when nothing is hovered.
	HighlightRow int
	HighlightCol int
	Cycle        int

	nextSequence   int
	celebrateUntil time.Time
	nextLearn      time.Time
	resolveAt      time.Time
	rng            *rand.Rand
}

// NewBoard reveals 15 to 20 random givens of the puzzle.
func NewBoard(now time.Time, rng *rand.Rand) *Board {
	b := &Board{HighlightRow: -1, HighlightCol: -1, rng: rng}

	var givens [][2]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if puzzle[r][c] != 0 {
				givens = append(givens, [2]int{r, c})
			}
		}
	}
	visible := 15 + rng.IntN(6)
	rng.Shuffle(len(givens), func(i, j int) { givens[i], givens[j] = givens[j], givens[i] })
	for _, g := range givens[:visible] {
		b.Cells[g[0]][g[1]] = Cell{Value: puzzle[g[0]][g[1]], Confidence: 1}
	}

	b.scheduleLearn(now)
	return b
}

// Filled returns the number of non-empty cells.
func (b *Board) Filled() int {
	n := 0
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].Value != 0 {
				n++
			}
		}
	}
	return n
}

// Hover highlights the row and column of a cell.
func (b *Board) Hover(row, col int) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("cell (%d,%d) outside the board", row, col)
	}
	b.HighlightRow, b.HighlightCol = row, col
	return nil
}

// HoverEnd clears the highlight.
func (b *Board) HoverEnd() {
	b.HighlightRow, b.HighlightCol = -1, -1
}

// Celebrate fills in the next solve sequence and marks its cells until
// CelebrationDuration has passed. Sequences repeat round-robin.
func (b *Board) Celebrate(now time.Time) Sequence {
	seq := sequences[b.nextSequence%len(sequences)]
	b.nextSequence++

	b.clearCelebration()
	for i, cell := range seq.Cells {
		b.Cells[cell[0]][cell[1]] = Cell{Value: seq.Values[i], Confidence: 1, Celebrating: true}
	}
	b.celebrateUntil = now.Add(CelebrationDuration)
	return seq
}

// Tick advances the board's timers: it ends expired celebrations, starts
// a learning cycle when one is due and resolves finished ones.
func (b *Board) Tick(now time.Time) {
	if !b.celebrateUntil.IsZero() && !now.Before(b.celebrateUntil) {
		b.clearCelebration()
		b.celebrateUntil = time.Time{}
	}
	if !b.resolveAt.IsZero() && !now.Before(b.resolveAt) {
		b.Resolve()
		b.resolveAt = time.Time{}
	}
	if b.resolveAt.IsZero() && !now.Before(b.nextLearn) {
		p := b.Learn()
		b.resolveAt = now.Add(p.Duration)
		b.scheduleLearn(now)
	}
}

// Learn starts a learning cycle with a random pattern: roughly 12% of the
// empty cells receive a tentative guess.
func (b *Board) Learn() LearningPattern {
	p := LearningPatterns[b.rng.IntN(len(LearningPatterns))]
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].Value != 0 {
				continue
			}
			if b.rng.Float64() < 0.3 && b.rng.Float64() < 0.4 {
				b.Cells[r][c] = Cell{
					Value:      1 + b.rng.IntN(9),
					Confidence: p.Confidence * (0.5 + b.rng.Float64()*0.5),
					Learning:   true,
				}
			}
		}
	}
	b.Cycle++
	return p
}

// Resolve decides the fate of every tentative guess: 30% are removed, 40%
// gain confidence, the rest switch to another number.
func (b *Board) Resolve() {
	for r := range b.Cells {
		for c := range b.Cells[r] {
			cell := &b.Cells[r][c]
			if !cell.Learning {
				continue
			}
			switch d := b.rng.Float64(); {
			case d < 0.3:
				*cell = Cell{}
			case d < 0.7:
				cell.Confidence = math.Min(cell.Confidence+0.2, 0.95)
				cell.Learning = false
			default:
				*cell = Cell{
					Value:      1 + b.rng.IntN(9),
					Confidence: 0.3 + b.rng.Float64()*0.4,
				}
			}
		}
	}
}

// Learning reports whether any guess is still tentative.
func (b *Board) Learning() bool {
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].Learning {
				return true
			}
		}
	}
	return false
}

func (b *Board) clearCelebration() {
	for r := range b.Cells {
		for c := range b.Cells[r] {
			b.Cells[r][c].Celebrating = false
		}
	}
}

// scheduleLearn picks the next cycle start 6 to 10 seconds from now.
func (b *Board) scheduleLearn(now time.Time) {
	b.nextLearn = now.Add(6*time.Second + time.Duration(b.rng.Float64()*float64(4*time.Second)))
}
