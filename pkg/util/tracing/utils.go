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

package tracing

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
)

type TracerConfig string

const (
	NoopConfig TracerConfig = "noop"
)

var InvalidTracerConfigError error = fmt.Errorf("invalid tracer")

func ValidateTracerConfig(config TracerConfig) (TracerOption, error) {
	switch config {
	case NoopConfig:
		return Noop, nil
	default:
		return "", InvalidTracerConfigError
	}
}

// StartSpanForInstance creates a span for one pipeline stage of an instance.
// If parentSpanCtx is empty a root span is created for the instance first,
// and its context is returned so that later stages can refer to it.
func StartSpanForInstance(ctx context.Context, name, spanName, parentSpanCtx string, options ...opentracing.StartSpanOption) (opentracing.Span, context.Context, string) {
	opts := []opentracing.StartSpanOption{
		opentracing.Tag{
			Key:   InstanceTag,
			Value: name,
		},
	}
	opts = append(opts, options...)
	rootCtx := ""
	if parentSpanCtx == "" {
		rootSpan, spanCtx := StartSpan(ctx, DefaultSpanType, "rootSpan", "", opentracing.FollowsFromRef, opts...)
		defer rootSpan.Finish()

		if value, err := InjectContext(spanCtx, rootSpan, ""); err == nil {
			rootCtx = value
		}
		parentSpanCtx = rootCtx
	}

	newSpan, newCtx := StartSpan(ctx, DefaultSpanType, spanName, parentSpanCtx, opentracing.ChildOfRef, opts...)
	return newSpan, newCtx, rootCtx
}
