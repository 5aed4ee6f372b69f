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

package runtime

import (
	"fmt"
	"strings"
)

// Filter is a node of a filter tree. It is one of Base, Sequence, Fallback
// or IfThenElse.
type Filter interface {
	fmt.Stringer
	isFilter()
}

// Base applies the registered filter plugin with the given name.
type Base struct {
	Name string
}

// Sequence applies its children in order and stops with an empty result as
// soon as one of them returns no chains.
type Sequence struct {
	Children []Filter
}

// Fallback returns the first non-empty result of its children applied to the
// same input, or the input itself if all of them are empty.
type Fallback struct {
	Children []Filter
}

// IfThenElse applies Then to the result of Test if that is non-empty and Else
// to the input otherwise. A nil branch passes its input through.
type IfThenElse struct {
	Test, Then, Else Filter
}

func (Base) isFilter()       {}
func (Sequence) isFilter()   {}
func (Fallback) isFilter()   {}
func (IfThenElse) isFilter() {}

func (f Base) String() string {
	return f.Name
}

func (f Sequence) String() string {
	return "sequence(" + join(f.Children) + ")"
}

func (f Fallback) String() string {
	return "fallback(" + join(f.Children) + ")"
}

func (f IfThenElse) String() string {
	return fmt.Sprintf("ifThenElse(%v, %v, %v)", stringOrNil(f.Test), stringOrNil(f.Then), stringOrNil(f.Else))
}

func join(children []Filter) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = stringOrNil(c)
	}
	return strings.Join(parts, ", ")
}

func stringOrNil(f Filter) string {
	if f == nil {
		return "nil"
	}
	return f.String()
}

// Seq is shorthand for a Sequence of the given children.
func Seq(children ...Filter) Filter {
	return Sequence{Children: children}
}

// First is shorthand for a Fallback over the given children.
func First(children ...Filter) Filter {
	return Fallback{Children: children}
}

// BaseNames returns the plugin names referenced by f.
func BaseNames(f Filter) []string {
	var names []string
	var walk func(Filter)
	walk = func(f Filter) {
		switch t := f.(type) {
		case Base:
			names = append(names, t.Name)
		case Sequence:
			for _, c := range t.Children {
				walk(c)
			}
		case Fallback:
			for _, c := range t.Children {
				walk(c)
			}
		case IfThenElse:
			for _, c := range []Filter{t.Test, t.Then, t.Else} {
				if c != nil {
					walk(c)
				}
			}
		}
	}
	walk(f)
	return names
}
