package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsFor(t *testing.T) {
	t.Run("CJ", func(t *testing.T) {
		assert.Equal(t, []string{"PREAS", "A1", "A2", "J1", "J2", "J3", "Animador/a"}, GroupsFor(SectionCJ))
	})

	t.Run("Chiqui", func(t *testing.T) {
		assert.Equal(t, []string{"1º y 2º", "3º", "4º", "5º", "6º", "Animador/a"}, GroupsFor(SectionChiqui))
	})

	t.Run("every section offers Animador/a", func(t *testing.T) {
		for _, s := range Sections() {
			assert.Contains(t, GroupsFor(s), GroupAnimador, s)
		}
	})

	t.Run("unknown sections have no groups", func(t *testing.T) {
		for _, s := range []string{"", "cj", "Juvenil", " CJ"} {
			groups := GroupsFor(s)
			require.NotNil(t, groups)
			assert.Empty(t, groups, "section %q", s)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		g := GroupsFor(SectionCJ)
		g[0] = "changed"
		assert.Equal(t, "PREAS", GroupsFor(SectionCJ)[0])
	})
}

func TestForm_SectionResetsGroup(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetSection(SectionCJ))
	require.NoError(t, f.Set(FieldGroup, "J1"))
	assert.Equal(t, "J1", f.Values().Group)

	require.NoError(t, f.SetSection(SectionChiqui))
	assert.Equal(t, "", f.Values().Group)

	require.NoError(t, f.SetSection(SectionCJ))
	assert.Equal(t, "", f.Values().Group, "group must not come back")
}

func TestForm_SectionKeepsSharedGroup(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetSection(SectionCJ))
	require.NoError(t, f.Set(FieldGroup, GroupAnimador))

	require.NoError(t, f.SetSection(SectionChiqui))
	assert.Equal(t, GroupAnimador, f.Values().Group)
}

func TestForm_UnknownSectionClearsGroup(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetSection(SectionChiqui))
	require.NoError(t, f.Set(FieldGroup, "3º"))

	require.NoError(t, f.SetSection("Otra"))
	assert.Equal(t, "", f.Values().Group)
	assert.Empty(t, f.Groups())
}

func TestForm_GroupOutsideSectionIsDropped(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetSection(SectionChiqui))
	require.NoError(t, f.Set(FieldGroup, "J1"))
	assert.Equal(t, "", f.Values().Group)

	require.NoError(t, f.Set(FieldGroup, "5º"))
	assert.Equal(t, "5º", f.Values().Group)
}
