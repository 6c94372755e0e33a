// Attribute traits — each one extends a description with its own line.
package ants

// BaseAttributes is the description every ant starts from.
const BaseAttributes = "Basic ant attributes."

// Trait extends an attribute description.
type Trait func(desc string) string

// Speed adds the faster speed attribute.
func Speed(desc string) string {
	return desc + "\nFaster speed attribute added."
}

// Strength adds the increased strength attribute.
func Strength(desc string) string {
	return desc + "\nIncreased strength attribute added."
}

// Describe applies traits to base in order.
func Describe(base string, traits ...Trait) string {
	desc := base
	for _, t := range traits {
		desc = t(desc)
	}
	return desc
}

// ParseTrait maps a trait name ("speed", "strength") to its Trait.
func ParseTrait(name string) (Trait, bool) {
	switch name {
	case "speed":
		return Speed, true
	case "strength":
		return Strength, true
	}
	return nil, false
}
