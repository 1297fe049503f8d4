package algorithms

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/algoviz/pkg/animation"
)

// Options are the per-algorithm settings read from configuration.
type Options struct {
	StepDelay     time.Duration `mapstructure:"step_delay"`
	ShowNullNodes bool          `mapstructure:"show_null_nodes"`
	Presets       []string      `mapstructure:"presets"`
	ViewportWidth int           `mapstructure:"viewport_width"`
}

// DefaultViewportWidth is the number of array cells a sort view shows at once.
const DefaultViewportWidth = 12

// DecodeOptions converts a raw option map into Options, starting from defaults.
// Durations accept Go syntax ("250ms") or a plain number of milliseconds.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := Options{
		StepDelay:     animation.DefaultStepDelay,
		ViewportWidth: DefaultViewportWidth,
	}
	if len(raw) == 0 {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			millisecondsHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return opts, err
	}
	if err := decoder.Decode(raw); err != nil {
		return opts, fmt.Errorf("invalid algorithm options: %w", err)
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	return opts, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// millisecondsHook lets plain numbers stand for milliseconds in duration fields.
func millisecondsHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	case string:
		if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
	}
	return data, nil
}
