package vocab

// resolveClassUsage fills the domain and range cross-references of c from
// the properties built so far.
func resolveClassUsage(c *Class, props []*Property) {
	c.DomainOf, c.IncludedInDomainOf = collectUsage(c.ID, props, func(p *Property) []*Term { return p.Domain })
	c.RangeOf, c.IncludesRangeOf = collectUsage(c.ID, props, func(p *Property) []*Term { return p.Range })
}

// resolveDatatypeUsage fills the range cross-references of d. Datatypes are
// never domains.
func resolveDatatypeUsage(d *Datatype, props []*Property) {
	d.RangeOf, d.IncludesRangeOf = collectUsage(d.ID, props, func(p *Property) []*Term { return p.Range })
}

// collectUsage returns the IDs of the properties whose reference list names
// id, split by whether the list has one entry or several. References are
// matched on their local name.
func collectUsage(id string, props []*Property, refs func(*Property) []*Term) (single, multi []string) {
	single, multi = []string{}, []string{}
	for _, p := range props {
		list := refs(p)
		for _, ref := range list {
			if ref.ID != id {
				continue
			}
			if len(list) == 1 {
				single = append(single, p.ID)
			} else {
				multi = append(multi, p.ID)
			}
			break
		}
	}
	return single, multi
}
