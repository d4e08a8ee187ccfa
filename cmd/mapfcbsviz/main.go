// Command mapfcbsviz replays a solved grid+agents+solution instance in
// a gio window: grid cells, agent paths, conflicts (if any), and
// timeline playback. Grounded on internal/vis/app.go's
// app.Window/app.Main loop shape.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"

	"github.com/orangedot/mapf-cbs/internal/ioformat"
	"github.com/orangedot/mapf-cbs/internal/search"
	"github.com/orangedot/mapf-cbs/internal/viz"
	"github.com/orangedot/mapf-cbs/internal/viz/state"
)

func main() {
	gridPath := flag.String("grid", "grid.txt", "Grid text file")
	agentsPath := flag.String("agents", "agents.txt", "Agent file")
	solutionPath := flag.String("solution", "solution.txt", "Solution file")
	flag.Parse()

	st, err := loadState(*gridPath, *agentsPath, *solutionPath)
	if err != nil {
		log.Fatalf("mapfcbsviz: %v", err)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("mapfcbs visualizer"))
		if err := viz.NewApp(st).Run(w); err != nil {
			log.Fatalf("mapfcbsviz: %v", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loadState(gridPath, agentsPath, solutionPath string) (*state.State, error) {
	gridFile, err := os.Open(gridPath)
	if err != nil {
		return nil, err
	}
	defer gridFile.Close()
	grid, err := ioformat.ParseGrid(gridFile)
	if err != nil {
		return nil, err
	}

	agentsFile, err := os.Open(agentsPath)
	if err != nil {
		return nil, err
	}
	defer agentsFile.Close()
	agents, err := ioformat.ParseAgents(agentsFile)
	if err != nil {
		return nil, err
	}

	solutionFile, err := os.Open(solutionPath)
	if err != nil {
		return nil, err
	}
	defer solutionFile.Close()
	named, err := ioformat.ParseSolution(solutionFile)
	if err != nil {
		return nil, err
	}

	paths := make([]search.Path, len(agents))
	for i, a := range agents {
		for _, np := range named {
			if np.Name == a.Name {
				paths[i] = np.Coords
				break
			}
		}
	}

	return state.New(grid, agents, paths), nil
}
