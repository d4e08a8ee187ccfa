package ioformat

import (
	"bufio"
	"io"
	"strings"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

// ParseGrid reads the grid file format: each line is a
// row of '0' (blocked) / '1' (passable), trailing CR tolerated, rows
// padded to the widest row with blocked cells, row zero is the top
// row, column zero is the leftmost.
func ParseGrid(r io.Reader) (*gridworld.Grid, error) {
	var rows [][]bool
	width := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		row := make([]bool, len(line))
		for i, ch := range line {
			switch ch {
			case '0':
				row[i] = false
			case '1':
				row[i] = true
			default:
				return nil, inputErrorf("grid file: invalid character %q at row %d column %d", ch, len(rows), i)
			}
		}
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, inputErrorf("grid file: read error: %v", err)
	}
	if len(rows) == 0 {
		return nil, inputErrorf("grid file: empty world")
	}

	cells := make([]bool, width*len(rows))
	for y, row := range rows {
		for x := 0; x < width; x++ {
			if x < len(row) {
				cells[y*width+x] = row[x]
			}
			// short rows are right-padded with blocked (false) cells
		}
	}
	return gridworld.New(width, len(rows), cells), nil
}

// WriteGrid writes g back out in the same '0'/'1' row-per-line
// format ParseGrid reads.
func WriteGrid(w io.Writer, g *gridworld.Grid) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height(); y++ {
		line := make([]byte, g.Width())
		for x := 0; x < g.Width(); x++ {
			if g.Passable(gridworld.Coord{X: uint16(x), Y: uint16(y)}) {
				line[x] = '1'
			} else {
				line[x] = '0'
			}
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
