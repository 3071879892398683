// Command aggresim runs one of the example aggregate programs over a
// YAML-declared static topology, driving every device through a fixed
// number of rounds with an in-process simnet.Hub and printing a
// per-round summary table.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/aggre/engine"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/program"
	"github.com/sarchlab/aggre/serial"
	"github.com/sarchlab/aggre/simnet"
	"github.com/sarchlab/aggre/topology"
	"github.com/sarchlab/aggre/vm"
)

func main() {
	topoPath := flag.String("topology", "testdata/topology.yaml", "path to a topology YAML file")
	programName := flag.String("program", "gradient", "example program to run: gradient, election, or consensus")
	rounds := flag.Int("rounds", 5, "number of rounds to simulate")
	source := flag.String("source", "0", "device id that is the gradient source (gradient program only)")
	flag.Parse()

	topo, err := topology.Load(*topoPath)
	if err != nil {
		slog.Error("failed to load topology", "error", err)
		os.Exit(1)
	}

	switch *programName {
	case "gradient":
		runGradient(topo, *rounds, *source)
	case "consensus":
		runConsensus(topo, *rounds)
	case "election":
		runElection(topo, *rounds)
	default:
		slog.Error("unknown program", "program", *programName)
		os.Exit(1)
	}

	atexit.Exit(0)
}

func parseUint32Ids(topo *topology.Topology) (map[string]ident.Uint32, map[ident.Uint32][]ident.Uint32) {
	idOf := make(map[string]ident.Uint32, len(topo.DeviceIDs()))
	for _, raw := range topo.DeviceIDs() {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			slog.Error("device id is not a number; gradient/consensus need numeric ids", "id", raw)
			os.Exit(1)
		}
		idOf[raw] = ident.Uint32(n)
	}

	neighbors := make(map[ident.Uint32][]ident.Uint32, len(idOf))
	for _, raw := range topo.DeviceIDs() {
		for _, n := range topo.NeighborsOf(raw) {
			neighbors[idOf[raw]] = append(neighbors[idOf[raw]], idOf[n])
		}
	}
	return idOf, neighbors
}

func printRound(round int, header string, rows [][]any) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Round %d — %s", round, header))
	t.AppendHeader(table.Row{"device", "value"})
	for _, r := range rows {
		t.AppendRow(r)
	}
	fmt.Println(t.Render())
}

func runGradient(topo *topology.Topology, rounds int, sourceRaw string) {
	idOf, neighbors := parseUint32Ids(topo)
	s := serial.JSON{}
	hub := simnet.NewHub(neighbors, s)

	sourceID := idOf[sourceRaw]
	engines := make(map[ident.Uint32]*engine.Engine[ident.Uint32, struct{}, int])
	for _, raw := range topo.DeviceIDs() {
		id := idOf[raw]
		engines[id] = engine.New[ident.Uint32, struct{}, int](id, s, hub.NetworkFor(id), nil)
	}

	for round := 1; round <= rounds; round++ {
		var rows [][]any
		for _, raw := range topo.DeviceIDs() {
			id := idOf[raw]
			dist, err := engines[id].Cycle(struct{}{}, func(_ struct{}, v *vm.VM[ident.Uint32]) (int, error) {
				return program.Gradient(id == sourceID, v)
			})
			if err != nil {
				slog.Warn("round skipped", "device", raw, "error", err)
				continue
			}
			rows = append(rows, []any{raw, dist})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i][0].(string) < rows[j][0].(string) })
		printRound(round, "gradient distance", rows)
	}
}

func runConsensus(topo *topology.Topology, rounds int) {
	idOf, neighbors := parseUint32Ids(topo)
	s := serial.JSON{}
	hub := simnet.NewHub(neighbors, s)

	engines := make(map[ident.Uint32]*engine.Engine[ident.Uint32, struct{}, bool])
	for _, raw := range topo.DeviceIDs() {
		id := idOf[raw]
		engines[id] = engine.New[ident.Uint32, struct{}, bool](id, s, hub.NetworkFor(id), nil)
	}

	for round := 1; round <= rounds; round++ {
		var rows [][]any
		for _, raw := range topo.DeviceIDs() {
			id := idOf[raw]
			initialBelief := id%2 == 0
			belief, err := engines[id].Cycle(struct{}{}, func(_ struct{}, v *vm.VM[ident.Uint32]) (bool, error) {
				return program.Consensus(initialBelief, v)
			})
			if err != nil {
				slog.Warn("round skipped", "device", raw, "error", err)
				continue
			}
			rows = append(rows, []any{raw, belief})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i][0].(string) < rows[j][0].(string) })
		printRound(round, "consensus belief", rows)
	}
}

func runElection(topo *topology.Topology, rounds int) {
	idOf := make(map[string]xid.ID, len(topo.DeviceIDs()))
	for _, raw := range topo.DeviceIDs() {
		idOf[raw] = xid.New()
	}

	neighbors := make(map[xid.ID][]xid.ID, len(idOf))
	for _, raw := range topo.DeviceIDs() {
		for _, n := range topo.NeighborsOf(raw) {
			neighbors[idOf[raw]] = append(neighbors[idOf[raw]], idOf[n])
		}
	}

	s := serial.JSON{}
	hub := simnet.NewHub(neighbors, s)

	engines := make(map[xid.ID]*engine.Engine[xid.ID, struct{}, xid.ID])
	for _, raw := range topo.DeviceIDs() {
		id := idOf[raw]
		engines[id] = engine.New[xid.ID, struct{}, xid.ID](id, s, hub.NetworkFor(id), nil)
	}

	for round := 1; round <= rounds; round++ {
		var rows [][]any
		for _, raw := range topo.DeviceIDs() {
			id := idOf[raw]
			leader, err := engines[id].Cycle(struct{}{}, func(_ struct{}, v *vm.VM[xid.ID]) (xid.ID, error) {
				return program.Elect(id, v)
			})
			if err != nil {
				slog.Warn("round skipped", "device", raw, "error", err)
				continue
			}
			rows = append(rows, []any{raw, leader.String()})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i][0].(string) < rows[j][0].(string) })
		printRound(round, "elected leader", rows)
	}
}
