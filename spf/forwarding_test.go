package spf

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewForwardingTable(t *testing.T) {
	testCases := []struct {
		desc            string
		topo            *Topology
		src             int
		want            []Route
		wantUnreachable []int
	}{
		{
			desc: "single node",
			topo: NewTopology(nil, 1),
		},
		{
			// 0--5-->1--2-->2
			//  \            ^
			//   +-----9-----+
			desc: "shared next hop",
			topo: NewTopology([]Edge{{0, 1, 5}, {0, 2, 9}, {1, 2, 2}}, 3),
			want: []Route{
				{Destination: 1, NextHop: 1, Cost: 5},
				{Destination: 2, NextHop: 1, Cost: 7},
			},
		},
		{
			desc:            "isolated router",
			topo:            NewTopology(nil, 2),
			wantUnreachable: []int{1},
		},
		{
			// 0-->1-->2-->3-->4, 0-->5 (direct but expensive to 4)
			desc: "long chain",
			topo: NewTopology([]Edge{
				{0, 1, 1},
				{1, 2, 1},
				{2, 3, 1},
				{3, 4, 1},
				{0, 5, 1},
				{5, 4, 10},
			}, 7),
			want: []Route{
				{Destination: 1, NextHop: 1, Cost: 1},
				{Destination: 2, NextHop: 1, Cost: 2},
				{Destination: 3, NextHop: 1, Cost: 3},
				{Destination: 4, NextHop: 1, Cost: 4},
				{Destination: 5, NextHop: 5, Cost: 1},
			},
			wantUnreachable: []int{6},
		},
		{
			// 1<--0-->2, 2-->3, 1-->3 (cheaper), source is 0.
			desc: "two neighbors",
			topo: NewTopology([]Edge{
				{0, 1, 2},
				{0, 2, 1},
				{2, 3, 5},
				{1, 3, 1},
			}, 4),
			want: []Route{
				{Destination: 1, NextHop: 1, Cost: 2},
				{Destination: 2, NextHop: 2, Cost: 1},
				{Destination: 3, NextHop: 1, Cost: 3},
			},
		},
		{
			desc: "source is not the first node",
			topo: NewTopology([]Edge{{2, 0, 1}, {0, 1, 1}, {2, 1, 3}}, 3),
			src:  2,
			want: []Route{
				{Destination: 0, NextHop: 0, Cost: 1},
				{Destination: 1, NextHop: 0, Cost: 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			res, err := ShortestPaths(tc.topo, tc.src)
			if err != nil {
				t.Fatalf("ShortestPaths(): want no error, got %s", err)
			}

			ft, err := NewForwardingTable(res)
			if err != nil {
				t.Fatalf("NewForwardingTable(): want no error, got %s", err)
			}

			if diff := cmp.Diff(tc.want, ft.Routes); diff != "" {
				t.Errorf("Routes: mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantUnreachable, ft.Unreachable()); diff != "" {
				t.Errorf("Unreachable(): mismatch (-want +got):\n%s", diff)
			}
			for _, r := range tc.want {
				got, ok := ft.Lookup(r.Destination)
				if !ok || got != r {
					t.Errorf("Lookup(%d): want %+v, got %+v (found: %t)", r.Destination, r, got, ok)
				}
				if l := ft.Link(got); l.From != tc.src || l.To != r.NextHop {
					t.Errorf("Link(%+v): want {%d %d}, got %+v", got, tc.src, r.NextHop, l)
				}
			}
			for _, d := range tc.wantUnreachable {
				if _, ok := ft.Lookup(d); ok {
					t.Errorf("Lookup(%d): want no route", d)
				}
			}
		})
	}
}

func TestNewForwardingTable_inconsistentTree(t *testing.T) {
	testCases := []struct {
		desc string
		res  *Result
	}{
		{
			desc: "cycle",
			res: &Result{
				Source: 0,
				Dist:   []int{0, 1, 2, 3},
				Parent: []int{NoParent, 0, 3, 2},
			},
		},
		{
			desc: "self parent",
			res: &Result{
				Source: 0,
				Dist:   []int{0, 1},
				Parent: []int{NoParent, 1},
			},
		},
		{
			desc: "reachable node without parent",
			res: &Result{
				Source: 0,
				Dist:   []int{0, 4, 5},
				Parent: []int{NoParent, 0, NoParent},
			},
		},
		{
			desc: "parent out of range",
			res: &Result{
				Source: 0,
				Dist:   []int{0, 4},
				Parent: []int{NoParent, 9},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ft, err := NewForwardingTable(tc.res)

			if !errors.Is(err, ErrInconsistentTree) {
				t.Errorf("NewForwardingTable(): want ErrInconsistentTree, got %v", err)
			}
			if ft != nil {
				t.Errorf("NewForwardingTable(): want nil table, got %+v", ft)
			}
		})
	}
}

func TestNewForwardingTable_nilResult(t *testing.T) {
	ft, err := NewForwardingTable(nil)

	if !errors.Is(err, ErrNilResult) {
		t.Errorf("NewForwardingTable(nil): want ErrNilResult, got %v", err)
	}
	if ft != nil {
		t.Errorf("NewForwardingTable(nil): want nil table, got %+v", ft)
	}
}

func TestNewForwardingTable_matchesPaths(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		topo := randomTopology(rng)
		src := rng.Intn(topo.NodeCount())
		res, err := ShortestPaths(topo, src)
		if err != nil {
			t.Fatalf("graph %d: ShortestPaths(): want no error, got %s", i, err)
		}

		ft, err := NewForwardingTable(res)
		if err != nil {
			t.Fatalf("graph %d: NewForwardingTable(): want no error, got %s", i, err)
		}

		if got, want := len(ft.Routes)+len(ft.Unreachable()), topo.NodeCount()-1; got != want {
			t.Errorf("graph %d: %d routes and unreachable nodes, want %d", i, got, want)
		}
		for _, r := range ft.Routes {
			path, err := res.PathTo(r.Destination)
			if err != nil {
				t.Fatalf("graph %d: PathTo(%d): want no error, got %s", i, r.Destination, err)
			}
			if path[1] != r.NextHop {
				t.Errorf("graph %d: route %+v, but path is %v", i, r, path)
			}
			if r.Cost != res.Dist[r.Destination] {
				t.Errorf("graph %d: route %+v, want cost %d", i, r, res.Dist[r.Destination])
			}
		}
	}
}
