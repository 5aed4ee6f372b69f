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

	"github.com/opentracing/opentracing-go"
	"k8s.io/klog/v2"
)

// noopTracer drops every span. It still carries the instance a span was
// started for in the returned context, and hands that name out as the span
// context so later stages of the same instance can refer to it.
type noopTracer struct {
	spans     opentracing.NoopTracer
	component string
}

var defaultTracer tracer = &noopTracer{}

type instanceKey struct{}

// InstanceFromContext returns the instance of the span ctx was derived from.
func InstanceFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(instanceKey{}).(string)
	return name, ok && name != ""
}

func instanceTag(opts []opentracing.StartSpanOption) (string, bool) {
	var sso opentracing.StartSpanOptions
	for _, o := range opts {
		o.Apply(&sso)
	}
	name, ok := sso.Tags[InstanceTag].(string)
	return name, ok
}

func (t *noopTracer) Init(componentName string) error {
	t.component = componentName
	klog.V(4).InfoS("Tracing disabled", "component", componentName)
	return nil
}

func (t *noopTracer) StartSpan(ctx context.Context, spanType, spanName string, ctxValue string, spanRef opentracing.SpanReferenceType, opts ...opentracing.StartSpanOption) (opentracing.Span, context.Context) {
	span := t.spans.StartSpan(spanName, opts...)
	ctx = opentracing.ContextWithSpan(ctx, span)
	name, ok := instanceTag(opts)
	if !ok {
		name = ctxValue
	}
	if name != "" {
		ctx = context.WithValue(ctx, instanceKey{}, name)
	}
	return span, ctx
}

// InjectContext returns the instance name, which StartSpan accepts back as
// ctxValue. Without one ctxValue is passed through.
func (t *noopTracer) InjectContext(ctx context.Context, span opentracing.Span, ctxValue string) (string, error) {
	if name, ok := InstanceFromContext(ctx); ok {
		return name, nil
	}
	return ctxValue, nil
}

func (t *noopTracer) Close() error {
	return nil
}
