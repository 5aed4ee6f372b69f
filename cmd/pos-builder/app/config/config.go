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

package config

import (
	"github.com/dwilmer/rcpsp-testing-framework/pkg/apis/config"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/metrics"
)

type Config struct {
	// PipelineConfig is the effective configuration, flags applied.
	PipelineConfig config.PipelineConfiguration

	// Files are the instances to process.
	Files []string

	// MetricsFile receives the collected metrics after the run if set.
	MetricsFile string
}

type completedConfig struct {
	*Config
}

type CompletedConfig struct {
	*completedConfig
}

func (c *Config) Complete() CompletedConfig {
	cc := completedConfig{c}
	metrics.Register()
	return CompletedConfig{&cc}
}
