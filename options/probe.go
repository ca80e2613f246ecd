package options

// ProbeEnum selects how batch operations check the shape of a collection
// before validating element values.
type ProbeEnum int

const (
	ProbeFirst  ProbeEnum = 1 << iota // property existence is checked once, against the first element
	ProbeEach                         // property existence is checked against every element
	ProbeGetter                       // the probed element must also declare a Get<Name> accessor

	ProbeAll     ProbeEnum = (1 << iota) - 1 // all probes combined
	ProbeDefault           = ProbeFirst      // homogeneous collection assumed
)

// Has reports whether every bit of flag is set in p.
func (p ProbeEnum) Has(flag ProbeEnum) bool {
	return p&flag == flag
}

// Merge combines the given probes. With no probes it returns ProbeDefault.
func Merge(probes ...ProbeEnum) ProbeEnum {
	if len(probes) == 0 {
		return ProbeDefault
	}

	var p ProbeEnum
	for _, probe := range probes {
		p |= probe
	}

	return p
}
