// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mailbox

import (
	"sync"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/postbox/log"
)

// Option is the interface that applies a registry option.
type Option interface {
	// Apply sets the Option value of a registry.
	Apply(*Registry)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Registry)

// Apply applies the option
func (f OptionFunc) Apply(r *Registry) {
	f(r)
}

// WithLogger sets the registry logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	})
}

// WithLocker sets the mutual-exclusion primitive guarding the registry.
// The primitive does not need to be reentrant: the registry never acquires
// it twice on the same call path. The default is a sync.Mutex.
func WithLocker(locker sync.Locker) Option {
	return OptionFunc(func(r *Registry) {
		r.locker = locker
	})
}

// WithMetrics enables the OpenTelemetry instruments using the global meter provider
func WithMetrics() Option {
	return OptionFunc(func(r *Registry) {
		r.metricsEnabled = true
	})
}

// WithMeterProvider enables the OpenTelemetry instruments using the given meter provider
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(r *Registry) {
		r.metricsEnabled = true
		r.meterProvider = provider
	})
}
