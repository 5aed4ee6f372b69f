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

package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/format"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

type dotOptions struct {
	pos            string
	compare        string
	native         bool
	keepTransitive bool
	resources      bool
}

func newDotCmd() *cobra.Command {
	o := &dotOptions{}
	cmd := &cobra.Command{
		Use:   "dot [flags] INSTANCE",
		Short: "Render an instance and its partial order schedule as a graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), args[0])
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&o.pos, "pos", o.pos, "Partial order schedule of the instance, in the native format.")
	fs.StringVar(&o.compare, "compare", o.compare, "A second partial order schedule to compare against.")
	fs.BoolVar(&o.native, "native", o.native, "Read the instance in the native format instead of PSPLIB.")
	fs.BoolVar(&o.keepTransitive, "keep-transitive", o.keepTransitive, "Keep edges that are implied by other edges.")
	fs.BoolVar(&o.resources, "resources", o.resources, "Label the activities with their resource demand.")
	return cmd
}

func (o *dotOptions) run(out io.Writer, file string) error {
	read := format.ReadPSPLIB
	if o.native {
		read = format.ReadInstance
	}
	in, err := readInstanceFile(file, filepath.Base(file), read)
	if err != nil {
		return err
	}
	pos, err := o.readPOS(o.pos, in.Name)
	if err != nil {
		return err
	}
	compare, err := o.readPOS(o.compare, in.Name)
	if err != nil {
		return err
	}
	if !o.keepTransitive {
		for _, g := range []*instance.Instance{in, pos, compare} {
			if g == nil {
				continue
			}
			if err := g.RemoveTransitiveConstraints(); err != nil {
				return err
			}
		}
	}
	return format.WriteDOT(out, in, pos, compare, o.resources)
}

func (o *dotOptions) readPOS(file, name string) (*instance.Instance, error) {
	if len(file) == 0 {
		return nil, nil
	}
	return readInstanceFile(file, name, format.ReadInstance)
}

func readInstanceFile(file, name string, read func(io.Reader, string) (*instance.Instance, error)) (*instance.Instance, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	in, err := read(f, name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", file)
	}
	return in, nil
}
