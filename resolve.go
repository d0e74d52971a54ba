package courier

import (
	"github.com/GriffinCanCode/courier/codec"
	"github.com/GriffinCanCode/courier/media"
)

// ParseFunc replaces codec selection for a single request.
type ParseFunc func(body []byte) (any, error)

// bodyPlan is the outcome of codec selection for a response.
type bodyPlan struct {
	raw   bool
	parse ParseFunc
	codec codec.Codec
	mime  string
}

// planBody applies the resolution precedence: auto-parsing off, custom parse
// function, expected type, exact base type, then parent type. The registry
// degrades the last step to passthrough.
func planBody(reg *codec.Registry, ct media.ContentType, expected string, parse ParseFunc, autoParse bool) bodyPlan {
	switch {
	case !autoParse:
		return bodyPlan{raw: true}
	case parse != nil:
		return bodyPlan{parse: parse}
	case expected != "":
		return bodyPlan{codec: reg.Get(expected), mime: expected}
	case reg.Has(ct.Base):
		return bodyPlan{codec: reg.Get(ct.Base), mime: ct.Base}
	default:
		return bodyPlan{codec: reg.Get(ct.Parent), mime: ct.Parent}
	}
}

func (p bodyPlan) run(body []byte) (any, error) {
	switch {
	case p.raw:
		return string(body), nil
	case p.parse != nil:
		return p.parse(body)
	default:
		return p.codec.Parse(body)
	}
}

// resolveBody parses body according to the plan for ct. Codec errors are
// returned as is, no other codec is tried.
func resolveBody(reg *codec.Registry, body []byte, ct media.ContentType, expected string, parse ParseFunc, autoParse bool) (any, error) {
	return planBody(reg, ct, expected, parse, autoParse).run(body)
}
