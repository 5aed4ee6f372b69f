// Copyright 2024 The Godel Rescheduler Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// Edge colors of WriteDOT.
const (
	colorAdded   = "red"
	colorCompare = "purple"
	colorMissing = "blue"
)

func dotNodeID(id int) string {
	return fmt.Sprintf("act_%d", id)
}

// WriteDOT writes pos as a Graphviz digraph. Edges of in are black, edges
// shared with compare are purple and other edges of pos are red. Edges that
// only compare has are drawn in blue. A nil pos draws in, and a nil compare
// compares pos with itself.
func WriteDOT(w io.Writer, in, pos, compare *instance.Instance, withResources bool) error {
	g, err := NewDOTGraph(in, pos, compare, withResources)
	if err != nil {
		return err
	}
	g.Write(w)
	return nil
}

// NewDOTGraph builds the graph WriteDOT renders. Node act_<id> carries the
// activity id as its label, followed by its demand when withResources is set.
func NewDOTGraph(in, pos, compare *instance.Instance, withResources bool) (*dot.Graph, error) {
	if pos == nil {
		pos = in
	}
	if compare == nil {
		compare = pos
	}
	if pos.NumActivities() != in.NumActivities() || compare.NumActivities() != in.NumActivities() {
		return nil, fmt.Errorf("cannot compare graphs of %d, %d and %d activities",
			in.NumActivities(), pos.NumActivities(), compare.NumActivities())
	}

	g := dot.NewGraph(dot.Directed)
	g.ID("pos")
	nodes := make([]dot.Node, pos.NumActivities())
	for id := range nodes {
		label := fmt.Sprint(id)
		if withResources {
			label = fmt.Sprintf("%d %v", id, pos.Activity(id).Demand)
		}
		nodes[id] = g.Node(dotNodeID(id)).Label(label)
	}
	for id := range nodes {
		act := pos.Activity(id)
		for _, p := range act.Predecessors() {
			e := g.Edge(nodes[p], nodes[id])
			switch {
			case in.HasPrecedenceConstraint(p, id):
			case compare.HasPrecedenceConstraint(p, id):
				e.Attr("color", colorCompare)
			default:
				e.Attr("color", colorAdded)
			}
		}
		for _, p := range compare.Activity(id).Predecessors() {
			if !in.HasPrecedenceConstraint(p, id) && !act.HasPredecessor(p) {
				g.Edge(nodes[p], nodes[id]).Attr("color", colorMissing)
			}
		}
	}
	return g, nil
}
