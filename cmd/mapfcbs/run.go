package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orangedot/mapf-cbs/internal/cbs"
	"github.com/orangedot/mapf-cbs/internal/ioformat"
	"github.com/orangedot/mapf-cbs/internal/obsmetrics"
	"github.com/orangedot/mapf-cbs/internal/search"
)

// RunCmd solves a single instance given as a grid file and an agents
// file, writing the solved paths to an explicit output path rather
// than a fixed convention (see DESIGN.md's Open Question decisions).
type RunCmd struct {
	Grid   string `arg:"" type:"existingfile" help:"Grid text file (rows of 0/1)"`
	Agents string `arg:"" type:"existingfile" help:"Agent file (name (sx,sy) (gx,gy) per line)"`
	Out    string `help:"Solution output path" default:"solution.txt"`

	TimeLimit  float64 `name:"time-limit" default:"30" help:"Wall-clock limit in seconds"`
	DepthLimit int     `name:"depth-limit" default:"30000" help:"Per-agent A* search depth limit"`
	PCAStar    bool    `name:"pcastar" default:"true" negatable:"" help:"Use PCA* repair instead of a classic from-scratch restart on each split"`
	Metrics    bool    `default:"false" help:"After solving, dump the run's Prometheus counters (nodes expanded, goals reached, PCA* repairs) to stdout in text exposition format"`
}

func (c *RunCmd) Run(logger *log.Logger) error {
	gridFile, err := os.Open(c.Grid)
	if err != nil {
		return err
	}
	defer gridFile.Close()
	grid, err := ioformat.ParseGrid(gridFile)
	if err != nil {
		return err
	}

	agentsFile, err := os.Open(c.Agents)
	if err != nil {
		return err
	}
	defer agentsFile.Close()
	agentDefs, err := ioformat.ParseAgents(agentsFile)
	if err != nil {
		return err
	}

	var observer search.Observer
	var metricsReg *prometheus.Registry
	if c.Metrics {
		metricsReg = prometheus.NewRegistry()
		observer = obsmetrics.NewPrometheusObserver(metricsReg)
	}

	agents := make([]*search.AgentSearch, len(agentDefs))
	for i, a := range agentDefs {
		agents[i] = search.NewAgentSearch(grid, i, a.Start, a.Goal, nil, observer)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.TimeLimit*float64(time.Second)))
	defer cancel()

	logger.Info("solving", "agents", len(agents), "grid", grid.Width(), "pcastar", c.PCAStar)

	root, err := cbs.NewRoot(ctx, agents, c.DepthLimit)
	if err != nil {
		return err
	}
	tree := cbs.NewTree(root, c.DepthLimit, c.PCAStar)
	solved, err := tree.Solve(ctx)
	if err != nil {
		return err
	}

	logger.Info("solved", "makespan", solved.Cost, "expanded_nodes", len(tree.Closed()))

	if c.Metrics {
		if err := obsmetrics.DumpText(metricsReg, os.Stdout); err != nil {
			return err
		}
	}

	outFile, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	defer outFile.Close()
	if err := ioformat.WriteSolution(outFile, agentDefs, solved.Paths); err != nil {
		return err
	}

	logger.Info("wrote solution", "path", c.Out)
	return nil
}
