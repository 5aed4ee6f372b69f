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

package options

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/apis/config"
)

func loadConfigFromFile(file string) (*config.PipelineConfiguration, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return loadConfig(data)
}

func loadConfig(data []byte) (*config.PipelineConfiguration, error) {
	cfg := &config.PipelineConfiguration{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("couldn't decode as %s: %v", config.Kind, err)
	}
	if len(cfg.Kind) > 0 && cfg.Kind != config.Kind {
		return nil, fmt.Errorf("couldn't decode as %s, got kind %q", config.Kind, cfg.Kind)
	}
	config.SetDefaults_PipelineConfiguration(cfg)
	return cfg, nil
}

// WriteConfigFile writes the pipeline config into the given file name as YAML.
func WriteConfigFile(fileName string, cfg *config.PipelineConfiguration) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configFile, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer configFile.Close()
	if _, err := configFile.Write(data); err != nil {
		return err
	}

	return nil
}
