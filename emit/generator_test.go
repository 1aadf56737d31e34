package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/implement"
)

// upper is a toy generator printing member names.
type upper struct{ indent int }

func (upper) Language() string      { return "upper" }
func (upper) FileExtension() string { return "txt" }
func (u upper) GenerateMember(m implement.GeneratedMember) string {
	return strings.Repeat(" ", u.indent) + strings.ToUpper(m.Name) + "\n"
}
func (u upper) GenerateStrategy(s implement.Strategy) string { return JoinMembers(u, s.Members) }

func TestRegistry(t *testing.T) {
	Register("Upper", func(indent int) Generator { return upper{indent: indent} })

	assert.True(t, Supported("UPPER"))
	assert.Contains(t, Languages(), "upper")

	g, err := New("upper", 2)
	require.NoError(t, err)
	assert.Equal(t, "  RUN\n", g.GenerateMember(implement.GeneratedMember{Name: "run"}))

	_, err = New("cobol", 4)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "upper")
}

func TestJoinMembers(t *testing.T) {
	s := implement.Strategy{Members: []implement.GeneratedMember{{Name: "a"}, {Name: "b"}}}
	assert.Equal(t, "A\n\nB\n", upper{}.GenerateStrategy(s))
}
