// Package presets loads declarative motion tokens from YAML.
//
// A presets document declares reusable variants maps and named transitions
// that hosts can reference instead of building Props by hand:
//
//	variants:
//	  card:
//	    hidden:  {opacity: 0, y: 20}
//	    visible: {opacity: 1, y: 0}
//	transitions:
//	  quick:
//	    duration: 150ms
//	    ease: easeOut
//	  spring-ish:
//	    duration: 400ms
//	    type: spring
//	    stiffness: 120
//
// Transition fields the engine does not interpret (like stiffness above)
// are preserved in the descriptor's Extra map, matching the gate's
// tolerance contract: unknown descriptor shapes ride along inert.
package presets

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atze1210/motion/pkg/animation"
	"github.com/atze1210/motion/pkg/motion"
)

// Presets holds the tokens declared by one document.
type Presets struct {
	// Variants maps a set name to a variants map usable as Props.Variants.
	Variants map[string]motion.Variants

	// Transitions maps a preset name to a transition descriptor.
	Transitions map[string]*animation.Transition
}

// document mirrors the YAML layout. Transition bodies decode as loose maps
// so unrecognized fields can be carried instead of rejected.
type document struct {
	Variants    map[string]map[string]map[string]float64 `yaml:"variants"`
	Transitions map[string]map[string]any                `yaml:"transitions"`
}

// Load parses a presets document.
func Load(r io.Reader) (*Presets, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	p := &Presets{
		Variants:    make(map[string]motion.Variants, len(doc.Variants)),
		Transitions: make(map[string]*animation.Transition, len(doc.Transitions)),
	}

	for name, set := range doc.Variants {
		variants := make(motion.Variants, len(set))
		for label, channels := range set {
			style := make(motion.Style, len(channels))
			for ch, v := range channels {
				style[ch] = v
			}
			variants[label] = style
		}
		p.Variants[name] = variants
	}

	for name, fields := range doc.Transitions {
		tr, err := buildTransition(fields)
		if err != nil {
			return nil, fmt.Errorf("transition %q: %w", name, err)
		}
		p.Transitions[name] = tr
	}

	return p, nil
}

// LoadFile parses a presets document from disk.
func LoadFile(path string) (*Presets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// buildTransition lifts the fields the engine understands into the
// descriptor and parks everything else in Extra.
func buildTransition(fields map[string]any) (*animation.Transition, error) {
	tr := &animation.Transition{}
	for key, raw := range fields {
		switch key {
		case "duration":
			d, err := parseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("duration: %w", err)
			}
			tr.Duration = d
		case "delay":
			d, err := parseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("delay: %w", err)
			}
			tr.Delay = d
		case "ease":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("ease: expected string, got %T", raw)
			}
			tr.Ease = s
		case "type":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("type: expected string, got %T", raw)
			}
			tr.Type = s
		default:
			if tr.Extra == nil {
				tr.Extra = make(map[string]any)
			}
			tr.Extra[key] = raw
		}
	}
	return tr, nil
}

// parseDuration accepts either a Go duration string ("150ms") or a bare
// number of seconds, the common shorthand in animation tokens.
func parseDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		return time.ParseDuration(v)
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("expected duration string or seconds, got %T", raw)
	}
}
