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

package metric

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestProvider(t *testing.T) {
	t.Run("With global provider", func(t *testing.T) {
		prevProvider := otel.GetMeterProvider()
		recorder := &recorderMeterProvider{MeterProvider: noop.NewMeterProvider()}
		otel.SetMeterProvider(recorder)
		t.Cleanup(func() {
			otel.SetMeterProvider(prevProvider)
		})

		provider := NewProvider()
		require.Equal(t, recorder, provider.MeterProvider())
		require.NotNil(t, provider.Meter())
		require.Equal(t, []string{instrumentationName}, recorder.called)
	})
	t.Run("With custom provider", func(t *testing.T) {
		recorder := &recorderMeterProvider{MeterProvider: noop.NewMeterProvider()}
		provider := NewProvider(WithMeterProvider(recorder))
		require.Equal(t, recorder, provider.MeterProvider())
		require.Equal(t, []string{instrumentationName}, recorder.called)
	})
	t.Run("With nil provider", func(t *testing.T) {
		provider := NewProvider(WithMeterProvider(nil))
		require.NotNil(t, provider.MeterProvider())
		require.NotNil(t, provider.Meter())
	})
}

func TestRegistryMetric(t *testing.T) {
	instruments, err := NewRegistryMetric(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	require.NotNil(t, instruments.MailboxesCount())
	require.NotNil(t, instruments.DeliveredCount())
	require.NotNil(t, instruments.OverwrittenCount())
	require.NotNil(t, instruments.DroppedCount())
	require.Len(t, instruments.Instruments(), 4)
}

func TestRegistryMetricErrors(t *testing.T) {
	errBoom := errors.New("boom")
	baseMeter := noop.NewMeterProvider().Meter("test")

	for _, name := range []string{
		"postbox.mailboxes.count",
		"postbox.messages.delivered",
		"postbox.messages.overwritten",
		"postbox.messages.dropped",
	} {
		t.Run(name, func(t *testing.T) {
			meter := failingMeter{Meter: baseMeter, failures: map[string]error{name: errBoom}}
			instruments, err := NewRegistryMetric(meter)
			require.ErrorIs(t, err, errBoom)
			require.Nil(t, instruments)
		})
	}
}

type recorderMeterProvider struct {
	metric.MeterProvider
	called []string
}

func (p *recorderMeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	p.called = append(p.called, name)
	return p.MeterProvider.Meter(name, opts...)
}

type failingMeter struct {
	metric.Meter
	failures map[string]error
}

func (m failingMeter) Int64ObservableCounter(name string, opts ...metric.Int64ObservableCounterOption) (metric.Int64ObservableCounter, error) {
	if err, ok := m.failures[name]; ok {
		return nil, err
	}
	return m.Meter.Int64ObservableCounter(name, opts...)
}

func (m failingMeter) Int64ObservableGauge(name string, opts ...metric.Int64ObservableGaugeOption) (metric.Int64ObservableGauge, error) {
	if err, ok := m.failures[name]; ok {
		return nil, err
	}
	return m.Meter.Int64ObservableGauge(name, opts...)
}
