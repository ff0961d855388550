package registration

// Sections offered by the registration form.
const (
	SectionCJ     = "CJ"
	SectionChiqui = "Chiqui"
)

// GroupAnimador is present in every section's group list.
const GroupAnimador = "Animador/a"

var sectionGroups = map[string][]string{
	SectionCJ:     {"PREAS", "A1", "A2", "J1", "J2", "J3", GroupAnimador},
	SectionChiqui: {"1º y 2º", "3º", "4º", "5º", "6º", GroupAnimador},
}

// Sections returns the selectable sections in display order.
func Sections() []string {
	return []string{SectionCJ, SectionChiqui}
}

// GroupsFor returns the ordered groups allowed for section.
// Unknown or empty sections yield an empty list. The returned slice is a
// copy and may be modified by the caller.
func GroupsFor(section string) []string {
	groups, ok := sectionGroups[section]
	if !ok {
		return []string{}
	}
	out := make([]string, len(groups))
	copy(out, groups)
	return out
}

// normalizeGroup returns group if it belongs to section, "" otherwise.
func normalizeGroup(section, group string) string {
	for _, g := range sectionGroups[section] {
		if g == group {
			return group
		}
	}
	return ""
}
